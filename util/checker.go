package util

import (
	"container/list"

	"github.com/hetianyi/gox"
)

// StringListExists tells whether the list already carries the element.
func StringListExists(l *list.List, ele string) bool {
	exists := false
	gox.WalkList(l, func(item interface{}) bool {
		if item.(string) == ele {
			exists = true
			return true
		}
		return false
	})
	return exists
}
