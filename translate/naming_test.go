package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModelName(t *testing.T) {
	tests := map[string]string{
		"users":         "User",
		"user":          "User",
		"blog_posts":    "BlogPost",
		"people":        "Person",
		"user_api_keys": "UserAPIKey",
		"Orders":        "Order",
		"OrderItems":    "OrderItem",
	}
	for table, want := range tests {
		assert.Equal(t, want, modelName(table), table)
	}
}

func TestNaming(t *testing.T) {
	assert.Equal(t, "userInfo", camel("user_info"))
	assert.Equal(t, "userID", camel("user_id"))
	assert.Equal(t, "", camel(""))
	assert.Equal(t, "UserInfo", pascal("userInfo"))
	assert.Equal(t, "user_info", snake("UserInfo"))
	assert.Equal(t, "posts", backFieldName("Post", true))
	assert.Equal(t, "blogPosts", backFieldName("BlogPost", true))
	assert.Equal(t, "people", backFieldName("Person", true))
	assert.Equal(t, "profile", backFieldName("Profile", false))
}

func TestUniqueName(t *testing.T) {
	taken := map[string]bool{"posts": true, "posts2": true}
	assert.Equal(t, "posts3", uniqueName("posts", func(s string) bool { return taken[s] }))
	assert.Equal(t, "comments", uniqueName("comments", func(s string) bool { return taken[s] }))
}
