package i18n

import "testing"

func TestGetCatalogFallsBackToBase(t *testing.T) {
	base := GetCatalog(BaseLocale)
	if base == nil {
		t.Fatal("expected base catalog")
	}

	for _, requested := range []string{"", "   ", "missing-locale", "zz-ZZ"} {
		if got := GetCatalog(requested); got != base {
			t.Fatalf("GetCatalog(%q) = %v, want base catalog", requested, got.Locale())
		}
	}
}

func TestGetCatalogMatchesNearestLocale(t *testing.T) {
	tests := []struct {
		requested string
		want      string
	}{
		{"en-US", "en-US"},
		{"en-GB", "en-US"},
		{"pt", "pt-BR"},
		{"pt-BR", "pt-BR"},
		{"fr-FR", "en-US"},
	}
	for _, tc := range tests {
		t.Run(tc.requested, func(t *testing.T) {
			got := GetCatalog(tc.requested)
			if got.Locale() != tc.want {
				t.Fatalf("GetCatalog(%q).Locale() = %q, want %q", tc.requested, got.Locale(), tc.want)
			}
		})
	}
}

func TestFormatEchoesUnknownCode(t *testing.T) {
	cat := NewCatalog("en-AU", map[Code]string{
		CodeAccessDenied: "no access",
	})
	if got := cat.Format("SOME_NEW_CODE", nil); got != "SOME_NEW_CODE" {
		t.Fatalf("Format = %q, want the code echoed back", got)
	}
}

func TestFormatNeverHidesTheError(t *testing.T) {
	tests := []struct {
		name     string
		template string
		metadata map[string]string
		want     string
	}{
		{
			name:     "missing metadata key renders placeholder",
			template: "denied by {{.Policy}}",
			metadata: nil,
			want:     "denied by <no value>",
		},
		{
			name:     "parse failure returns raw template",
			template: "denied by {{ if .Policy }}",
			metadata: map[string]string{"Policy": "requiresAdmin"},
			want:     "denied by {{ if .Policy }}",
		},
		{
			name:     "execution failure returns raw template",
			template: "denied by {{ call .Policy }}",
			metadata: map[string]string{"Policy": "requiresAdmin"},
			want:     "denied by {{ call .Policy }}",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cat := NewCatalog("en-US", map[Code]string{CodeAccessDenied: tc.template})
			if got := cat.Format(CodeAccessDenied, tc.metadata); got != tc.want {
				t.Fatalf("Format = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRegisterCatalogWinsExactLookup(t *testing.T) {
	es := NewCatalog("es-ES", map[Code]string{CodeAccessDenied: "Acceso denegado"})
	RegisterCatalog("es-ES", es)

	got := GetCatalog("es-ES")
	if got != es {
		t.Fatalf("GetCatalog(es-ES) returned %q catalog, want the registered one", got.Locale())
	}
	if msg := got.Format(CodeAccessDenied, nil); msg != "Acceso denegado" {
		t.Fatalf("Format = %q, want %q", msg, "Acceso denegado")
	}
}

func TestFormatRendersMetadata(t *testing.T) {
	got := GetCatalog("en-US").Format(CodeAccessTokenMismatch, map[string]string{"Field": "audience"})
	want := "The access token was issued for a different audience"
	if got != want {
		t.Fatalf("Format = %q, want %q", got, want)
	}
}
