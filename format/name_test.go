package format

import "testing"

func TestParseName(t *testing.T) {
	tests := []struct {
		in   string
		want Name
		ok   bool
	}{
		{"isStatic[boolean]", Name{Ident: "isStatic", Type: "boolean", Brackets: true}, true},
		{"isStatic[]", Name{Ident: "isStatic", Brackets: true}, true},
		{"isStatic", Name{Ident: "isStatic"}, true},
		{"attrs[object]", Name{Ident: "attrs", Type: "object", Brackets: true}, true},
		{"snake_case_2", Name{Ident: "snake_case_2"}, true},
		{"", Name{}, false},
		{"has-getter", Name{}, false},
		{"name []", Name{}, false},
		{"name[ ]", Name{}, false},
		{"name[a][b]", Name{}, false},
		{"[]", Name{}, false},
		{"name[", Name{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseName(tt.in)
			if ok != tt.ok {
				t.Fatalf("ParseName(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}

			if got != tt.want {
				t.Errorf("ParseName(%q) = %+v, want %+v", tt.in, got, tt.want)
			}

			if ok && got.String() != tt.in {
				t.Errorf("String() = %q, want %q", got.String(), tt.in)
			}
		})
	}
}
