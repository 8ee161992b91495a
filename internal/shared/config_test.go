package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "HTTP_ADDR", "HOTEL_API_RPS", "PRICING_FILE", "DEFAULT_CGST_RATE", "DEFAULT_SGST_RATE", "EXTRA_BED_CHARGE", "CACHE_TTL_SECONDS", "HOTEL_API_TIMEOUT_SECONDS"} {
		t.Setenv(k, "")
	}
	c := Load()
	if c.AppEnv != "prod" || c.HTTPAddr != ":8080" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.Pricing.CGSTRate != 2.5 || c.Pricing.SGSTRate != 2.5 || c.Pricing.ExtraBedCharge != 0 {
		t.Fatalf("pricing defaults = %+v", c.Pricing)
	}
	if c.CacheTTL != 5*time.Minute {
		t.Fatalf("cache ttl = %v", c.CacheTTL)
	}
	if c.HotelAPITimeout != 20*time.Second {
		t.Fatalf("hotel API timeout = %v, want 20s", c.HotelAPITimeout)
	}
}

func TestLoad_EnvOverridesPricingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pricing.yaml")
	if err := os.WriteFile(path, []byte("cgstRate: 6\nsgstRate: 6\nextraBedCharge: 500\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PRICING_FILE", path)
	t.Setenv("DEFAULT_SGST_RATE", "9")
	t.Setenv("DEFAULT_CGST_RATE", "")
	t.Setenv("EXTRA_BED_CHARGE", "")
	t.Setenv("HOTEL_API_RPS", "2")

	c := Load()
	want := PricingDefaults{CGSTRate: 6, SGSTRate: 9, ExtraBedCharge: 500}
	if c.Pricing != want {
		t.Fatalf("pricing = %+v, want %+v", c.Pricing, want)
	}
	if c.HotelAPIRPS != 2 {
		t.Fatalf("rps = %v", c.HotelAPIRPS)
	}
}

func TestLoadPricingFile_PartialAndInvalid(t *testing.T) {
	dir := t.TempDir()
	base := PricingDefaults{CGSTRate: 2.5, SGSTRate: 2.5, ExtraBedCharge: 300}

	partial := filepath.Join(dir, "partial.yaml")
	_ = os.WriteFile(partial, []byte("extraBedCharge: 800\n"), 0o600)
	got, err := LoadPricingFile(partial, base)
	if err != nil {
		t.Fatalf("partial: %v", err)
	}
	if got.CGSTRate != 2.5 || got.ExtraBedCharge != 800 {
		t.Fatalf("partial overlay = %+v", got)
	}

	bad := filepath.Join(dir, "bad.yaml")
	_ = os.WriteFile(bad, []byte("cgstRate: -1\n"), 0o600)
	got, err = LoadPricingFile(bad, base)
	if err == nil {
		t.Fatal("expected error for negative rate")
	}
	if got != base {
		t.Fatalf("base not returned on error: %+v", got)
	}

	if _, err := LoadPricingFile(filepath.Join(dir, "missing.yaml"), base); err == nil {
		t.Fatal("expected error for missing file")
	}
}
