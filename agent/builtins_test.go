package agent

import (
	"strings"
	"testing"
)

func TestBuiltinGetWeather(t *testing.T) {
	r := BuiltinRegistry()
	tool := r.Get("get_weather")
	if tool == nil {
		t.Fatal("get_weather not registered")
	}

	result, err := tool.Func(map[string]any{"city": "Oslo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result.(string), "Oslo") {
		t.Errorf("result does not mention the city: %v", result)
	}

	if _, err := tool.Func(map[string]any{}); err == nil {
		t.Error("missing city argument should fail")
	}
}

func TestBuiltinAddNumbers(t *testing.T) {
	tool := BuiltinRegistry().Get("add_numbers")
	result, err := tool.Func(map[string]any{"a": float64(2), "b": float64(3)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.(float64) != 5 {
		t.Errorf("2+3 = %v", result)
	}
}

func TestBuiltinCalculateArea(t *testing.T) {
	tool := BuiltinRegistry().Get("calculate_area")
	result, err := tool.Func(map[string]any{"width": 4.0, "height": 2.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.(float64) != 10 {
		t.Errorf("4*2.5 = %v", result)
	}
}

func TestBuiltinRegistryIsFresh(t *testing.T) {
	a := BuiltinRegistry()
	b := BuiltinRegistry()
	a.Unregister("get_weather")
	if b.Get("get_weather") == nil {
		t.Error("registries returned by BuiltinRegistry share state")
	}
}
