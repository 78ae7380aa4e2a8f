package tagger

import "testing"

func TestGetField(t *testing.T) {
	data := map[string]interface{}{
		"data_type": "fs:stat",
		"event": map[string]interface{}{
			"source": map[string]interface{}{
				"plugin": "mac_appfirewall",
			},
		},
	}
	if val, ok := GetField("data_type", data); !ok || val != "fs:stat" {
		t.Fatalf("flat key lookup failed, got %v", val)
	}
	if val, ok := GetField("event.source.plugin", data); !ok || val != "mac_appfirewall" {
		t.Fatalf("nested key lookup failed, got %v", val)
	}
	if _, ok := GetField("event.missing", data); ok {
		t.Fatal("missing nested key should not resolve")
	}
	if _, ok := GetField("missing", data); ok {
		t.Fatal("missing key should not resolve")
	}
	// key resolving to a nested object has no scalar value to compare
	if _, ok := GetField("event", data); ok {
		t.Fatal("key resolving to a nested object should not resolve")
	}
	if _, ok := GetField("event.source", data); ok {
		t.Fatal("dotted key resolving to a nested object should not resolve")
	}
}

func TestConditionOnNestedObject(t *testing.T) {
	event := DynamicMap{
		"data_type": map[string]interface{}{
			"sub": "chrome:history:file_downloaded",
		},
	}
	c := Condition{Field: "data_type", S: ContentPattern{Token: "chrome:history:file_downloaded"}}
	if c.Match(event) {
		t.Fatal("condition on a nested object value should evaluate to false")
	}
}

func TestRecordSelect(t *testing.T) {
	r := Record{
		"data_type": "chrome:history:file_downloaded",
	}
	c := Condition{Field: "data_type", S: ContentPattern{Token: "chrome:history:file_downloaded"}}
	if !c.Match(r) {
		t.Fatal("flat record should satisfy condition")
	}
	c = Condition{Field: "filename", S: ContentPattern{Token: "x"}}
	if c.Match(r) {
		t.Fatal("missing field should evaluate condition to false")
	}
}
