// Package lib groups helpers that do not fit strictly into other layers.
//
// cache holds the optional Redis read-through cache used by services.
package lib
