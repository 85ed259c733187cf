// Package translate turns a described raw schema into a dml.Datamodel.
package translate
