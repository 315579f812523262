package domain

import "testing"

func boolPtr(b bool) *bool      { return &b }
func f64Ptr(f float64) *float64 { return &f }

func TestParagraphStyleHelpers(t *testing.T) {
	styled := Paragraph{
		Text: "ʕbd (< Arab. ʕbd)",
		Runs: []Run{
			{Text: "ʕbd ", Italic: boolPtr(true), SizePt: f64Ptr(11)},
			{Text: "(< Arab. ʕbd)", Italic: boolPtr(false)},
		},
	}
	if !styled.HasItalicRun() {
		t.Error("HasItalicRun() = false for italic-run paragraph")
	}
	if !styled.HasStyledRuns() {
		t.Error("HasStyledRuns() = false for styled paragraph")
	}
	if !styled.HasRunSized(11) {
		t.Error("HasRunSized(11) = false")
	}
	if styled.HasRunSized(12) {
		t.Error("HasRunSized(12) = true")
	}
	if !styled.LeadingItalic() {
		t.Error("LeadingItalic() = false, first run is italic")
	}

	bare := Paragraph{Text: "ʕbd (< Arab. ʕbd)"}
	if bare.HasItalicRun() || bare.HasStyledRuns() || bare.LeadingItalic() {
		t.Error("style helpers reported styles on a run-less paragraph")
	}
}

func TestParagraphLeadingItalicSkipsEmptyRuns(t *testing.T) {
	p := Paragraph{
		Text: " ʕayəš",
		Runs: []Run{
			{Text: " "},
			{Text: "ʕayəš", Italic: boolPtr(true)},
		},
	}
	if !p.LeadingItalic() {
		t.Error("LeadingItalic() = false, first visible run is italic")
	}
}

func TestParagraphIsEmpty(t *testing.T) {
	if !(Paragraph{Text: " \t "}).IsEmpty() {
		t.Error("whitespace-only paragraph not empty")
	}
	if (Paragraph{Text: "ʕ"}).IsEmpty() {
		t.Error("letter paragraph reported empty")
	}
}
