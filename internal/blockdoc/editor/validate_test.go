package editor_test

import (
	"testing"

	"github.com/aisa-it/blockdoc/internal/blockdoc/editor"
	"github.com/aisa-it/blockdoc/internal/blockdoc/editor/edtypes"
)

func TestValidateDropPosition(t *testing.T) {
	// Документ размером 14: два horizontalRule, параграф "abcd", пустой
	// параграф и параграф "ab" (pos 10, size 4).
	tests := []struct {
		name       string
		sourcePos  int
		targetPos  int
		nodeSize   int
		docSize    int
		wantValid  bool
		wantReason string
	}{
		{"negative target", 10, -1, 4, 14, false, editor.ReasonOutsideBounds},
		{"negative source", -1, 2, 4, 14, false, editor.ReasonOutsideBounds},
		{"target past end", 10, 15, 4, 14, false, editor.ReasonOutsideBounds},
		{"target at document end", 0, 14, 4, 14, true, ""},
		{"drop before own span", 10, 2, 4, 14, true, ""},
		{"drop at own start is a silent no-op", 10, 10, 4, 14, false, editor.ReasonAlreadyAtPosition},
		{"drop at own end is a silent no-op", 10, 14, 4, 14, false, editor.ReasonAlreadyAtPosition},
		{"drop inside own span", 10, 12, 4, 14, false, editor.ReasonDropOnSelf},
		{"drop just inside own start", 5, 6, 3, 14, false, editor.ReasonDropOnSelf},
		{"drop just inside own end", 10, 13, 4, 14, false, editor.ReasonDropOnSelf},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := editor.ValidateDropPosition(tt.sourcePos, tt.targetPos, tt.nodeSize, tt.docSize)
			if v.IsValid != tt.wantValid {
				t.Fatalf("IsValid = %v, want %v (reason %q)", v.IsValid, tt.wantValid, v.Reason)
			}
			if v.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", v.Reason, tt.wantReason)
			}
		})
	}
}

func TestDropValidationSilent(t *testing.T) {
	v := editor.ValidateDropPosition(10, 10, 4, 14)
	if !v.Silent() {
		t.Error("no-op drop must be silent")
	}
	v = editor.ValidateDropPosition(10, 12, 4, 14)
	if v.Silent() {
		t.Error("drop onto itself must not be silent")
	}
}

func TestIsConversionValid(t *testing.T) {
	tests := []struct {
		name        string
		source      edtypes.NodeType
		target      edtypes.NodeType
		sourceAttrs map[string]any
		targetAttrs map[string]any
		wantValid   bool
		wantNoOp    bool
		wantLossy   bool
	}{
		{
			name:   "list item never converts directly",
			source: edtypes.TypeListItem, target: edtypes.TypeParagraph,
		},
		{
			name:   "unknown target type",
			source: edtypes.TypeParagraph, target: "table",
		},
		{
			name:   "same type same attrs is a no-op",
			source: edtypes.TypeParagraph, target: edtypes.TypeParagraph,
			wantValid: true, wantNoOp: true,
		},
		{
			name:   "same heading level is a no-op",
			source: edtypes.TypeHeading, target: edtypes.TypeHeading,
			sourceAttrs: map[string]any{"level": 2},
			targetAttrs: map[string]any{"level": 2},
			wantValid:   true, wantNoOp: true,
		},
		{
			name:   "heading level change proceeds",
			source: edtypes.TypeHeading, target: edtypes.TypeHeading,
			sourceAttrs: map[string]any{"level": 2},
			targetAttrs: map[string]any{"level": 3},
			wantValid:   true,
		},
		{
			name:   "json float level equals int level",
			source: edtypes.TypeHeading, target: edtypes.TypeHeading,
			sourceAttrs: map[string]any{"level": float64(2)},
			targetAttrs: map[string]any{"level": 2},
			wantValid:   true, wantNoOp: true,
		},
		{
			name:   "list kind change keeps items",
			source: edtypes.TypeBulletList, target: edtypes.TypeOrderedList,
			wantValid: true,
		},
		{
			name:   "list to paragraph flattens",
			source: edtypes.TypeBulletList, target: edtypes.TypeParagraph,
			wantValid: true, wantLossy: true,
		},
		{
			name:   "blockquote to heading flattens",
			source: edtypes.TypeBlockquote, target: edtypes.TypeHeading,
			wantValid: true, wantLossy: true,
		},
		{
			name:   "blockquote to blockquote toggles off, not a no-op",
			source: edtypes.TypeBlockquote, target: edtypes.TypeBlockquote,
			wantValid: true,
		},
		{
			name:   "paragraph to code block",
			source: edtypes.TypeParagraph, target: edtypes.TypeCodeBlock,
			wantValid: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := editor.IsConversionValid(tt.source, tt.target, tt.sourceAttrs, tt.targetAttrs)
			if check.Valid != tt.wantValid {
				t.Fatalf("Valid = %v, want %v (reason %q)", check.Valid, tt.wantValid, check.Reason)
			}
			if check.NoOp != tt.wantNoOp {
				t.Errorf("NoOp = %v, want %v", check.NoOp, tt.wantNoOp)
			}
			if check.Lossy != tt.wantLossy {
				t.Errorf("Lossy = %v, want %v", check.Lossy, tt.wantLossy)
			}
		})
	}
}
