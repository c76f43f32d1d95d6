package pipeline

import (
	"slices"
	"testing"

	"github.com/matzehuels/signupboard/pkg/errors"
)

func intPtr(v int) *int { return &v }

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"dot", false},
		{"conflicts", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"svg", []string{"svg"}},
		{" SVG , json ", []string{"svg", "json"}},
		{"svg,svg,dot", []string{"svg", "dot"}},
		{",,", []string{"svg"}},
	}
	for _, tt := range tests {
		if got := ParseFormats(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFileExtension(t *testing.T) {
	if got := FileExtension(FormatSVG); got != "svg" {
		t.Errorf("FileExtension(svg) = %q", got)
	}
	if got := FileExtension(FormatConflicts); got != "conflicts.svg" {
		t.Errorf("FileExtension(conflicts) = %q", got)
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	var opts Options
	opts.SetLayoutDefaults()

	if opts.ExtensionHours == nil || *opts.ExtensionHours != DefaultExtensionHours {
		t.Errorf("ExtensionHours = %v, want %d", opts.ExtensionHours, DefaultExtensionHours)
	}
	if opts.Logger != nil {
		t.Error("Logger should stay nil so the runner's logger is used")
	}

	// Zero is a valid explicit extension and must survive.
	opts = Options{ExtensionHours: intPtr(0)}
	opts.SetLayoutDefaults()
	if *opts.ExtensionHours != 0 {
		t.Errorf("explicit zero extension overwritten with %d", *opts.ExtensionHours)
	}
}

func TestSetRenderDefaults(t *testing.T) {
	var opts Options
	opts.SetRenderDefaults()

	if !slices.Equal(opts.Formats, []string{FormatSVG}) {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.LaneHeight != DefaultLaneHeight {
		t.Errorf("LaneHeight = %d, want %d", opts.LaneHeight, DefaultLaneHeight)
	}
	if opts.Width != DefaultWidth {
		t.Errorf("Width = %d, want %d", opts.Width, DefaultWidth)
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"defaults", Options{}, ""},
		{"negative extension", Options{ExtensionHours: intPtr(-1)}, errors.ErrCodeConfiguration},
		{"bad day id", Options{Days: []string{"../sat"}}, errors.ErrCodeInvalidID},
		{"negative width", Options{Width: -10}, errors.ErrCodeConfiguration},
		{"bad format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("ValidateAndSetDefaults() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateAndSetDefaults() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Formats: []string{"json"}, Days: []string{"sat"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("first call: %v", err)
	}
	first := opts
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second call: %v", err)
	}

	if *first.ExtensionHours != *opts.ExtensionHours ||
		first.LaneHeight != opts.LaneHeight ||
		first.Width != opts.Width ||
		!slices.Equal(first.Formats, opts.Formats) {
		t.Errorf("options changed on second call: %+v vs %+v", first, opts)
	}
}

func TestKeyOpts(t *testing.T) {
	opts := Options{Days: []string{"sat"}, Day: "sat", Highlight: "catan"}
	opts.SetRenderDefaults()

	bk := opts.BoardKeyOpts()
	if bk.ExtensionHours != DefaultExtensionHours || !slices.Equal(bk.Days, []string{"sat"}) {
		t.Errorf("BoardKeyOpts() = %+v", bk)
	}
	ak := opts.ArtifactKeyOpts(FormatSVG)
	if ak.Format != "svg" || ak.Day != "sat" || ak.Highlight != "catan" || ak.Width != DefaultWidth {
		t.Errorf("ArtifactKeyOpts() = %+v", ak)
	}

	bo := opts.BuildOptions()
	if bo.ExtensionHours != DefaultExtensionHours || !slices.Equal(bo.Days, []string{"sat"}) {
		t.Errorf("BuildOptions() = %+v", bo)
	}
}
