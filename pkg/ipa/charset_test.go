package ipa

import "testing"

func TestContains(t *testing.T) {
	if !Contains('a') {
		t.Error("expected 'a' to be in the IPA charset")
	}
	if !Contains('ɔ') {
		t.Error("expected 'ɔ' to be in the IPA charset")
	}
	if Contains('@') {
		t.Error("expected '@' to be absent from the IPA charset")
	}
}
