package carrier

import (
	"reflect"
	"testing"
)

func TestUnitSystem(t *testing.T) {
	if got := (Settings{WeightUnit: "KG"}).UnitSystem(); got != "metric" {
		t.Errorf("KG: got %q", got)
	}
	if got := (Settings{WeightUnit: "LBS"}).UnitSystem(); got != "imperial" {
		t.Errorf("LBS: got %q", got)
	}
}

func TestEnabledServiceCodes(t *testing.T) {
	s := Settings{Services: map[string]ServiceSetting{
		"P": {Enabled: true},
		"N": {Enabled: true},
		"K": {Enabled: false},
	}}

	if got := s.EnabledServiceCodes(); !reflect.DeepEqual(got, []string{"N", "P"}) {
		t.Errorf("expected sorted enabled codes, got %v", got)
	}

	if got := (Settings{}).EnabledServiceCodes(); len(got) != 0 {
		t.Errorf("expected no codes, got %v", got)
	}
}
