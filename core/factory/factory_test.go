package factory

import (
	"errors"
	"strings"
	"testing"
)

type sink struct {
	URL     string
	Timeout int
}

type sinkConf struct {
	URL     string `json:"url"`
	Timeout int    `json:"timeout_seconds"`
}

func TestRegistry_Create(t *testing.T) {
	reg := NewRegistry[*sink]()
	if err := reg.Register("influx", func(conf map[string]any) (*sink, error) {
		var c sinkConf
		if err := Decode(conf, &c); err != nil {
			return nil, err
		}
		return &sink{URL: c.URL, Timeout: c.Timeout}, nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	inst, err := reg.Create(ModuleConfig{Type: "influx", Conf: map[string]any{"url": "http://db", "timeout_seconds": "5"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if inst.URL != "http://db" || inst.Timeout != 5 {
		t.Fatalf("unexpected instance %+v", inst)
	}
}

func TestRegistry_Errors(t *testing.T) {
	reg := NewRegistry[int]()
	if err := reg.Register("x", func(map[string]any) (int, error) { return 1, nil }); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register("x", func(map[string]any) (int, error) { return 2, nil }); err == nil {
		t.Fatal("expected duplicate error")
	}
	if err := reg.Register("nil", nil); err == nil {
		t.Fatal("expected nil factory error")
	}
	_, err := reg.Create(ModuleConfig{Type: "y"})
	if err == nil || !strings.Contains(err.Error(), "[x]") {
		t.Fatalf("expected unknown type error listing known types, got %v", err)
	}

	boom := errors.New("boom")
	_ = reg.Register("fail", func(map[string]any) (int, error) { return 0, boom })
	if _, err := reg.Create(ModuleConfig{Type: "fail"}); !errors.Is(err, boom) {
		t.Fatalf("factory error should be wrapped, got %v", err)
	}
	if got := reg.Types(); len(got) != 2 || got[0] != "fail" {
		t.Fatalf("unexpected types %v", got)
	}
}
