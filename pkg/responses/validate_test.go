package responses

import "testing"

func TestValidate_BuiltInContent(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("built-in content is invalid:\n%v", err)
	}
}

func TestCatalog_CoversEveryPool(t *testing.T) {
	if got := len(Catalog); got != 17 {
		t.Errorf("catalog has %d pools, want 17", got)
	}
	for name, pool := range Catalog {
		if len(pool) == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}
