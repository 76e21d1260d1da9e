package seqfile

import (
	"strings"
	"testing"
)

func TestParseUnixPath(t *testing.T) {
	f := Parse("/projects/show/render_v002.0100.exr")

	if f.Drive != "" {
		t.Fatalf("drive: got %q, want empty", f.Drive)
	}
	if f.Dir != "/projects/show/" {
		t.Fatalf("dir: got %q", f.Dir)
	}
	if f.Name != "render_v002.0100" {
		t.Fatalf("name: got %q", f.Name)
	}
	if f.Ext != ".exr" {
		t.Fatalf("ext: got %q", f.Ext)
	}
	if got := f.Drive + f.Dir + f.Name + f.Ext; got != f.Path {
		t.Fatalf("components do not rebuild path: %q", got)
	}
}

func TestParseWindowsPath(t *testing.T) {
	f := Parse(`c:\renders\shot010\plate.1001.dpx`)

	if f.Drive != "c:" {
		t.Fatalf("drive: got %q", f.Drive)
	}
	if f.Dir != `\renders\shot010\` {
		t.Fatalf("dir: got %q", f.Dir)
	}
	if f.Name != "plate.1001" {
		t.Fatalf("name: got %q", f.Name)
	}
	if f.Ext != ".dpx" {
		t.Fatalf("ext: got %q", f.Ext)
	}
	if got := f.DisplayDir(); got != "c:/renders/shot010/" {
		t.Fatalf("display dir: got %q", got)
	}
}

func TestParseBareName(t *testing.T) {
	f := Parse("frame0042.png")
	if f.Drive != "" || f.Dir != "" {
		t.Fatalf("bare name should have no drive or dir: %+v", f)
	}
	if f.Name != "frame0042" || f.Ext != ".png" {
		t.Fatalf("unexpected split: name=%q ext=%q", f.Name, f.Ext)
	}
}

func TestParseHiddenFileHasNoExtension(t *testing.T) {
	f := Parse("/home/user/.hidden")
	if f.Name != ".hidden" || f.Ext != "" {
		t.Fatalf("leading dot is part of the name: name=%q ext=%q", f.Name, f.Ext)
	}
}

func TestDigitGroupsAndMask(t *testing.T) {
	tests := []struct {
		path   string
		groups int
		mask   string
	}{
		{"/d/plain.txt", 0, "plain"},
		{"/d/frame.0001.exr", 1, "frame.@"},
		{"/d/shot_01_frame_0001.exr", 2, "shot_@_frame_@"},
		{"/d/v2_cam03_take012.mov", 3, "v@_cam@_take@"},
		{"/d/1234", 1, "@"},
	}
	for _, tt := range tests {
		f := Parse(tt.path)
		if len(f.Groups) != tt.groups {
			t.Errorf("%s: got %d groups, want %d", tt.path, len(f.Groups), tt.groups)
		}
		if f.Mask != tt.mask {
			t.Errorf("%s: mask %q, want %q", tt.path, f.Mask, tt.mask)
		}
		if f.HasDigits() != (tt.groups > 0) {
			t.Errorf("%s: HasDigits mismatch", tt.path)
		}
	}
}

func TestGroupTextAndValue(t *testing.T) {
	f := Parse("/d/shot_07_frame_0042.exr")

	text, ok := f.GroupText(0)
	if !ok || text != "07" {
		t.Fatalf("group 0 text: got %q, %v", text, ok)
	}
	v, ok := f.GroupValue(1)
	if !ok || v != 42 {
		t.Fatalf("group 1 value: got %d, %v", v, ok)
	}
	if _, ok := f.GroupText(2); ok {
		t.Fatal("out-of-range group should not resolve")
	}
	if _, ok := f.GroupText(-1); ok {
		t.Fatal("negative index should not resolve")
	}
}

func TestGroupValueOverflow(t *testing.T) {
	// 20 digits exceeds int64; the group exists but yields no frame value.
	f := Parse("/d/big_99999999999999999999.exr")
	if len(f.Groups) != 1 {
		t.Fatalf("got %d groups", len(f.Groups))
	}
	if text, ok := f.GroupText(0); !ok || len(text) != 20 {
		t.Fatalf("group text: %q, %v", text, ok)
	}
	if _, ok := f.GroupValue(0); ok {
		t.Fatal("overflowing run must not parse as a frame")
	}
}

func TestSigKeyNormalizesSeparators(t *testing.T) {
	a := Parse(`c:\renders\plate.0001.exr`)
	b := Parse(`c:/renders/plate.0002.exr`)
	if a.SigKey() != b.SigKey() {
		t.Fatalf("separator style must not split a signature:\n%q\n%q", a.SigKey(), b.SigKey())
	}
}

func TestSigKeySeparatesMaskAndExt(t *testing.T) {
	base := Parse("/r/plate.0001.exr")
	otherMask := Parse("/r/bg.0001.exr")
	otherExt := Parse("/r/plate.0001.dpx")
	otherDir := Parse("/q/plate.0001.exr")

	for _, f := range []File{otherMask, otherExt, otherDir} {
		if f.SigKey() == base.SigKey() {
			t.Fatalf("signatures must differ: %q vs %q", f.Path, base.Path)
		}
	}
}

func TestPathKeyMatchesDirListing(t *testing.T) {
	target := Parse(`/renders\shot/plate.0001.exr`)
	listed := Parse("/renders/shot/plate.0001.exr")
	if target.PathKey() != listed.PathKey() {
		t.Fatalf("path keys must match across separator styles")
	}
}

func TestStringIncludesMask(t *testing.T) {
	f := Parse("/d/take_001.exr")
	if s := f.String(); !strings.Contains(s, "take_@") {
		t.Fatalf("String() = %q", s)
	}
}
