package tagger

import "strings"

// GetField is a helper for retreiving nested JSON keys with dot notation
func GetField(key string, data map[string]interface{}) (interface{}, bool) {
	if data == nil {
		return nil, false
	}
	bits := strings.SplitN(key, ".", 2)
	if len(bits) == 0 {
		return nil, false
	}
	if val, ok := data[bits[0]]; ok {
		switch res := val.(type) {
		case map[string]interface{}:
			// a non-dotted key resolving to a nested object has no scalar
			// value to compare, treat the field as absent
			if len(bits) == 1 {
				return nil, false
			}
			return GetField(bits[1], res)
		default:
			return val, ok
		}
	}
	return nil, false
}

// DynamicMap is a reference type for implementing Event on decoded JSON
type DynamicMap map[string]interface{}

// Select implements Selector
func (s DynamicMap) Select(key string) (interface{}, bool) {
	return GetField(key, s)
}

// Record is a reference type for implementing Event on flat string records
type Record map[string]string

// Select implements Selector
func (r Record) Select(key string) (interface{}, bool) {
	val, ok := r[key]
	return val, ok
}
