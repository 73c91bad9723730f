// SPDX-License-Identifier: MIT
package themes

import (
	"strings"
	"testing"
)

func TestHintFromTrigger(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "dark", value: "theme-toggle(dark)", want: "dark"},
		{name: "light", value: "theme-toggle(light)", want: "light"},
		{name: "last parenthesis wins", value: "toggle(a)(dark)", want: "dark"},
		{name: "plain value", value: " dark ", want: "dark"},
		{name: "empty", value: "", want: ""},
		{name: "unclosed", value: "theme-toggle(dark", want: ""},
		{name: "empty parens", value: "theme-toggle()", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HintFromTrigger(tt.value); got != tt.want {
				t.Errorf("HintFromTrigger(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestToggleTransitions(t *testing.T) {
	tests := []struct {
		hint string
		want Theme
	}{
		{hint: "dark", want: Light},
		{hint: "light", want: Dark},
		{hint: "", want: Dark},
		{hint: "sepia", want: Dark},
		{hint: "Dark", want: Dark},
	}

	for _, tt := range tests {
		t.Run("hint="+tt.hint, func(t *testing.T) {
			result := Toggle(tt.hint)
			if result.NewTheme != tt.want {
				t.Errorf("Toggle(%q).NewTheme = %s, want %s", tt.hint, result.NewTheme, tt.want)
			}
		})
	}
}

func TestToggleFragmentAdvertisesNewTheme(t *testing.T) {
	result := Toggle(HintFromTrigger("theme-toggle(dark)"))
	fragment := result.Fragment.String()

	if !strings.Contains(fragment, `name="theme-toggle(light)"`) {
		t.Errorf("fragment should advertise light, got: %s", fragment)
	}
	if !strings.Contains(fragment, `hx-post="/theme/toggle"`) {
		t.Errorf("fragment should post back to the toggle endpoint, got: %s", fragment)
	}
	if !strings.Contains(fragment, `hx-swap="outerHTML"`) {
		t.Errorf("fragment should replace itself, got: %s", fragment)
	}
}

func TestToggleDirectiveAppliesHint(t *testing.T) {
	result := Toggle("dark")
	directive := result.Directive.String()

	if !strings.HasPrefix(directive, "<script>") {
		t.Fatalf("directive should be a script, got: %s", directive)
	}
	if !strings.Contains(directive, `setAttribute("data-theme", "dark")`) {
		t.Errorf("directive should apply the hint, got: %s", directive)
	}
}

func TestToggleDirectiveEscapesHint(t *testing.T) {
	result := Toggle(`");alert(1);//</script>`)
	directive := result.Directive.String()

	if !strings.Contains(directive, `"\");alert(1);//\u003C/script\u003E"`) {
		t.Errorf("hint was not escaped: %s", directive)
	}
	if strings.Count(directive, "</script>") != 1 {
		t.Errorf("hint broke out of the script element: %s", directive)
	}
	if result.NewTheme != Dark {
		t.Errorf("unrecognized hint should resolve to dark, got %s", result.NewTheme)
	}
}

func TestToggleRoundTrip(t *testing.T) {
	// Each reply's control feeds the next request
	hint := "theme-toggle(" + string(Dark) + ")"
	var applied []string
	for i := 0; i < 4; i++ {
		result := Toggle(HintFromTrigger(hint))
		applied = append(applied, HintFromTrigger(hint))
		name, _ := result.Fragment.Attr("name")
		hint = name
	}

	want := []string{"dark", "light", "dark", "light"}
	for i := range want {
		if applied[i] != want[i] {
			t.Fatalf("applied sequence = %v, want %v", applied, want)
		}
	}
}

func TestParseThemeAndOpposite(t *testing.T) {
	if ParseTheme("DARK") != Dark {
		t.Error("ParseTheme should accept any case")
	}
	if ParseTheme("nonsense") != Light {
		t.Error("ParseTheme should default to light")
	}
	if Dark.Opposite() != Light || Light.Opposite() != Dark {
		t.Error("Opposite should flip the theme")
	}
}

func TestToggleReplyReplacesSlot(t *testing.T) {
	result := Toggle("dark")
	reply := result.Reply()

	if id, _ := reply.Attr("id"); id != SlotID {
		t.Fatalf("reply should be the slot, got id %q", id)
	}
	if len(reply.Children) != 2 || reply.Children[1].TagName() != "script" {
		t.Fatalf("reply should hold the control and its directive: %s", reply.String())
	}

	// The control swaps the slot, not just itself, so no directive is left behind
	target, _ := result.Fragment.Attr("hx-target")
	if target != "#"+SlotID {
		t.Errorf("control should target the slot, got %q", target)
	}
	if swap, _ := result.Fragment.Attr("hx-swap"); swap != "outerHTML" {
		t.Errorf("control should replace the slot, got %q", swap)
	}
}
