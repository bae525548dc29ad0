package metrics

import "testing"

func TestAttrKeysNonEmpty(t *testing.T) {
	if AttrMethod == "" || AttrPath == "" || AttrStatus == "" || AttrProvider == "" || AttrOperation == "" {
		t.Fatal("attribute keys must be non-empty")
	}
}
