package openai

import (
	"strings"
	"testing"
)

func TestDecodeModelJSONDirect(t *testing.T) {
	var parsed Caption
	if err := DecodeModelJSON(`{"title":"Leonardo Close-Up","caption":"Leonardo appears in inked linework."}`, &parsed); err != nil {
		t.Fatalf("DecodeModelJSON returned error: %v", err)
	}
	if parsed.Title != "Leonardo Close-Up" {
		t.Fatalf("unexpected title: %q", parsed.Title)
	}
}

func TestDecodeModelJSONWithSurroundingProse(t *testing.T) {
	content := `Sure! Here is the JSON you asked for: {"title":"Deadpool Pose Study","caption":"Deadpool strikes a pose."} Hope that helps.`
	var parsed Caption
	if err := DecodeModelJSON(content, &parsed); err != nil {
		t.Fatalf("DecodeModelJSON returned error: %v", err)
	}
	if parsed.Title != "Deadpool Pose Study" {
		t.Fatalf("unexpected title: %q", parsed.Title)
	}
}

func TestDecodeModelJSONWithTrailingProseOnly(t *testing.T) {
	content := `{"title":"Batman Profile","caption":"Batman is shown."} Hope this helps!`
	var parsed Caption
	if err := DecodeModelJSON(content, &parsed); err != nil {
		t.Fatalf("DecodeModelJSON returned error: %v", err)
	}
	if parsed.Title != "Batman Profile" {
		t.Fatalf("unexpected title: %q", parsed.Title)
	}
	if parsed.Caption != "Batman is shown." {
		t.Fatalf("unexpected caption: %q", parsed.Caption)
	}
}

func TestDecodeModelJSONWithCodeFence(t *testing.T) {
	content := "```json\n{\"title\":\"Batman Profile\",\"caption\":\"Batman stands tall.\"}\n```"
	var parsed Caption
	if err := DecodeModelJSON(content, &parsed); err != nil {
		t.Fatalf("DecodeModelJSON returned error: %v", err)
	}
	if parsed.Caption != "Batman stands tall." {
		t.Fatalf("unexpected caption: %q", parsed.Caption)
	}
}

func TestDecodeModelJSONRejectsGarbage(t *testing.T) {
	var parsed Caption
	err := DecodeModelJSON("no braces anywhere", &parsed)
	if err == nil {
		t.Fatal("expected error for unparsable payload")
	}
	if !strings.Contains(err.Error(), "payload snippet") {
		t.Fatalf("expected snippet in error, got: %v", err)
	}
}

func TestDecodeModelJSONRejectsEmpty(t *testing.T) {
	var parsed Caption
	if err := DecodeModelJSON("   ", &parsed); err == nil {
		t.Fatal("expected error for empty payload")
	}
}
