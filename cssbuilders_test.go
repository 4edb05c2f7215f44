package tpl2pdf

import (
	"strings"
	"testing"
)

func TestBuildPageCSS(t *testing.T) {
	g := resolveGeometry(&PageSettings{
		Format:      "a4",
		Orientation: "portrait",
		Margins:     Margins{Top: 10, Right: 15, Bottom: 20, Left: 25},
	}, 0, 0)

	css := buildPageCSS(g)

	for _, want := range []string{
		"size: 210.0mm 297.0mm",
		"margin: 10.0mm 15.0mm 20.0mm 25.0mm",
		"width: 170.0mm",
		"print-color-adjust: exact",
		defaultFontFamily,
	} {
		if !strings.Contains(css, want) {
			t.Errorf("buildPageCSS() missing %q", want)
		}
	}
}

func TestBuildPageCSSLandscape(t *testing.T) {
	g := resolveGeometry(&PageSettings{Format: "a4", Orientation: "landscape"}, 0, 0)
	css := buildPageCSS(g)
	if !strings.Contains(css, "size: 297.0mm 210.0mm") {
		t.Errorf("buildPageCSS() landscape size wrong:\n%s", css)
	}
}

func TestBuildTableCSS(t *testing.T) {
	css := buildTableCSS()
	for _, want := range []string{
		"display: table-header-group",
		"display: table-footer-group",
		"break-inside: avoid",
		"page-break-inside: avoid",
	} {
		if !strings.Contains(css, want) {
			t.Errorf("buildTableCSS() missing %q", want)
		}
	}
}

func TestBuildBreakUtilityCSS(t *testing.T) {
	css := buildBreakUtilityCSS()
	if !strings.Contains(css, ".page-break") || !strings.Contains(css, ".avoid-break") {
		t.Errorf("buildBreakUtilityCSS() missing utility classes:\n%s", css)
	}
	if !strings.Contains(css, "page-break-before: always") {
		t.Error("buildBreakUtilityCSS() missing legacy break property")
	}
}

func TestBuildBandCSS(t *testing.T) {
	tests := []struct {
		name     string
		headerMM float64
		footerMM float64
		want     []string
		empty    bool
	}{
		{name: "no bands", empty: true},
		{
			name:     "header only",
			headerMM: 15,
			want:     []string{".doc-header", "height: 15.0mm", "padding-top: 15.0mm"},
		},
		{
			name:     "footer only",
			footerMM: 12,
			want:     []string{".doc-footer", "height: 12.0mm", "padding-bottom: 12.0mm"},
		},
		{
			name:     "both bands",
			headerMM: 15,
			footerMM: 20,
			want:     []string{".doc-header", ".doc-footer", "padding-top: 15.0mm", "padding-bottom: 20.0mm"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			css := buildBandCSS(tt.headerMM, tt.footerMM)
			if tt.empty {
				if css != "" {
					t.Errorf("buildBandCSS() = %q, want empty", css)
				}
				return
			}
			for _, w := range tt.want {
				if !strings.Contains(css, w) {
					t.Errorf("buildBandCSS() missing %q", w)
				}
			}
		})
	}
}

func TestSanitizeCSS(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain css untouched", input: "p { color: red; }", want: "p { color: red; }"},
		{name: "closing tag escaped", input: "</style>", want: `<\/style>`},
		{name: "any closing sequence escaped", input: "a</b", want: `a<\/b`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeCSS(tt.input); got != tt.want {
				t.Errorf("sanitizeCSS(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
