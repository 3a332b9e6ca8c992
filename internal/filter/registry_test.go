package filter

import "testing"

func TestNewRegistry_CompilesInDeclarationOrder(t *testing.T) {
	cfg := FilterConfig{
		MessageFilters: []FilterRecord{
			{FilterType: FilterType{Kind: KindAnyMessage}, Entries: []FilterEntry{{Name: "any"}}},
			{FilterType: FilterType{Kind: KindNativeTransfer}, Entries: []FilterEntry{{Name: "native"}}},
		},
	}
	reg, err := NewRegistry(cfg)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	parsers := reg.Parsers()
	if len(parsers) != 2 {
		t.Fatalf("Parsers() len = %d, want 2", len(parsers))
	}
	if parsers[0].Name != "RawMessage" || parsers[1].Name != "EmptyMessage" {
		t.Fatalf("unexpected parser order: %q, %q", parsers[0].Name, parsers[1].Name)
	}
}

func TestNewRegistry_BadABIPathFails(t *testing.T) {
	cfg := FilterConfig{
		MessageFilters: []FilterRecord{
			{FilterType: FilterType{Kind: KindContract, Name: "Wallet", ABIPath: "/nonexistent/wallet.abi.json"}},
		},
	}
	if _, err := NewRegistry(cfg); err == nil {
		t.Fatalf("expected error loading a nonexistent ABI path")
	}
}

func TestInit_SingleAssignment(t *testing.T) {
	globalMu.Lock()
	global = nil
	globalMu.Unlock()

	cfg := FilterConfig{MessageFilters: []FilterRecord{{FilterType: FilterType{Kind: KindAnyMessage}}}}

	reg, err := Init(cfg)
	if err != nil {
		t.Fatalf("first Init: %v", err)
	}
	if Get() != reg {
		t.Fatalf("Get() did not return the registry assigned by Init")
	}

	if _, err := Init(cfg); err == nil {
		t.Fatalf("expected second Init to fail")
	}

	globalMu.Lock()
	global = nil
	globalMu.Unlock()
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	globalMu.Lock()
	global = nil
	globalMu.Unlock()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected Get to panic before Init")
		}
	}()
	Get()
}
