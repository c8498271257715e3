package logfields

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestHelperKeyNames verifies helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"EntryID", KeyEntryID, "e1", EntryID("e1")},
		{"Node", KeyNode, "Main Entry > Senses", Node("Main Entry > Senses")},
		{"Field", KeyField, "Gloss", Field("Gloss")},
		{"Publication", KeyPublication, "school", Publication("school")},
		{"Asset", KeyAsset, "/m/a.wav", Asset("/m/a.wav")},
		{"Folder", KeyFolder, "pictures", Folder("pictures")},
		{"Worker", KeyWorker, "worker-0", Worker("worker-0")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Key drift would break log ingestion schemas.
			assert.Equal(t, tc.attrKey, tc.attr.Key)
			assert.Equal(t, tc.attrVal, tc.attr.Value.String())
		})
	}
}

func TestNumericAndErrorHelpers(t *testing.T) {
	assert.Equal(t, int64(3), Count(3).Value.Int64())
	assert.InDelta(t, 1.5, DurationMS(1.5).Value.Float64(), 0.0001)
	assert.Equal(t, "", Error(nil).Value.String())
	assert.Equal(t, "boom", Error(errors.New("boom")).Value.String())
}
