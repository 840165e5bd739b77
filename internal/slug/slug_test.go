// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package slug

import "testing"

func TestTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Software Engineer", "Software_Engineer"},
		{"punctuation stripped", "Senior Engineer (Remote)!", "Senior_Engineer_Remote"},
		{"hyphens and underscores kept", "Back-end_Dev role", "Back-end_Dev_role"},
		{"multiple spaces collapse", "a   b\tc", "a_b_c"},
		{"unicode stripped", "Développeur Go", "Dveloppeur_Go"},
		{"empty", "", ""},
		{"only disallowed", "!@#$%", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Title(tt.input); got != tt.want {
				t.Errorf("Title(%q): got %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestUpload(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"My Resume (final).pdf", "My_Resume__final_.pdf"},
		{"resume.pdf", "resume.pdf"},
		{"a/b\\c.png", "a_b_c.png"},
	}

	for _, tt := range tests {
		if got := Upload(tt.input); got != tt.want {
			t.Errorf("Upload(%q): got %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSplitExt(t *testing.T) {
	tests := []struct {
		input    string
		wantBase string
		wantExt  string
	}{
		{"resume.PDF", "resume", ".pdf"},
		{"my.resume.Html", "my.resume", ".html"},
		{"noext", "noext", ""},
		{".hidden", ".hidden", ""},
	}

	for _, tt := range tests {
		base, ext := SplitExt(tt.input)
		if base != tt.wantBase || ext != tt.wantExt {
			t.Errorf("SplitExt(%q): got (%q, %q), want (%q, %q)",
				tt.input, base, ext, tt.wantBase, tt.wantExt)
		}
	}
}
