/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package analogue

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/suparena/analogue/connection"
	"github.com/suparena/analogue/errors"
	"github.com/suparena/analogue/event"
	"github.com/suparena/analogue/mapping"
	"github.com/suparena/analogue/testmodels"
)

// Test types
type product struct {
	ID    string  `db:"id"`
	Name  string  `db:"name"`
	Price float64 `db:"price"`
}

type productMap struct {
	mapping.EntityMap
}

// gadget never gets a map registered, so it falls through to the default.
type gadget struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

func newTestManager() (*Manager, *connection.Memory) {
	mem := connection.NewMemory("main")
	return New(connection.NewStaticProvider(mem), event.NewMemoryDispatcher()), mem
}

func TestManagerRegister(t *testing.T) {
	t.Run("ExplicitRegistration", func(t *testing.T) {
		m, _ := newTestManager()

		err := m.Register(&product{}, &productMap{})
		if err != nil {
			t.Fatalf("Failed to register: %v", err)
		}
		if !m.IsRegistered(&product{}) {
			t.Fatal("Expected product to be registered")
		}
		if m.IsRegistered(&gadget{}) {
			t.Fatal("Expected gadget to be unregistered")
		}
	})

	t.Run("DuplicateRegistration", func(t *testing.T) {
		m, _ := newTestManager()

		if err := m.Register(&product{}, &productMap{}); err != nil {
			t.Fatalf("First registration failed: %v", err)
		}
		err := m.Register(&product{}, &productMap{})
		if err == nil {
			t.Fatal("Expected duplicate registration to fail")
		}
		if !errors.IsDuplicateRegistration(err) {
			t.Fatalf("Expected duplicate registration error, got %v", err)
		}
	})

	t.Run("RegisterByTypeName", func(t *testing.T) {
		m, _ := newTestManager()

		err := m.Register("billing.Invoice", &mapping.EntityMap{Table: "invoices"})
		if err != nil {
			t.Fatalf("Failed to register by name: %v", err)
		}
		if !m.IsRegistered("billing.Invoice") {
			t.Fatal("Expected billing.Invoice to be registered")
		}
	})

	t.Run("RejectsNilEntity", func(t *testing.T) {
		m, _ := newTestManager()

		if err := m.Register(nil, &productMap{}); err == nil {
			t.Fatal("Expected registration of nil to fail")
		}
	})
}

func TestMapperSingleton(t *testing.T) {
	m, _ := newTestManager()

	first, err := m.Mapper(&product{})
	if err != nil {
		t.Fatalf("Failed to get mapper: %v", err)
	}
	second, err := m.Mapper(&product{})
	if err != nil {
		t.Fatalf("Failed to get mapper again: %v", err)
	}
	if first != second {
		t.Fatal("Expected the same mapper instance on every call")
	}

	// A different entity type gets its own mapper
	other, err := m.Mapper(&gadget{})
	if err != nil {
		t.Fatalf("Failed to get gadget mapper: %v", err)
	}
	if other == first {
		t.Fatal("Expected distinct mappers for distinct types")
	}
}

func TestMapperConcurrentAccess(t *testing.T) {
	m, _ := newTestManager()
	done := make(chan *Mapper, 50)

	for i := 0; i < 50; i++ {
		go func() {
			mp, err := m.Mapper(&product{})
			if err != nil {
				t.Errorf("Failed to get mapper: %v", err)
			}
			done <- mp
		}()
	}

	first := <-done
	for i := 1; i < 50; i++ {
		if mp := <-done; mp != first {
			t.Fatal("Expected every goroutine to observe the same mapper")
		}
	}
}

func TestMapperExplicitMap(t *testing.T) {
	t.Run("FirstUse", func(t *testing.T) {
		m, _ := newTestManager()

		mp, err := m.Mapper(&product{}, &productMap{EntityMap: mapping.EntityMap{Table: "catalog"}})
		if err != nil {
			t.Fatalf("Failed to get mapper: %v", err)
		}
		if mp.Map().TableName() != "catalog" {
			t.Fatalf("Expected table catalog, got %q", mp.Map().TableName())
		}
	})

	t.Run("ConflictsWithRegistration", func(t *testing.T) {
		m, _ := newTestManager()

		if err := m.Register(&product{}, &productMap{}); err != nil {
			t.Fatalf("Failed to register: %v", err)
		}
		_, err := m.Mapper(&product{}, &productMap{})
		if !errors.IsDuplicateRegistration(err) {
			t.Fatalf("Expected duplicate registration error, got %v", err)
		}
	})

	t.Run("IgnoredOnceCached", func(t *testing.T) {
		m, _ := newTestManager()

		first, err := m.Mapper(&product{})
		if err != nil {
			t.Fatalf("Failed to get mapper: %v", err)
		}
		second, err := m.Mapper(&product{}, &productMap{EntityMap: mapping.EntityMap{Table: "other"}})
		if err != nil {
			t.Fatalf("Failed to get cached mapper: %v", err)
		}
		if second != first {
			t.Fatal("Expected the cached mapper back")
		}
	})
}

func TestMapperResolution(t *testing.T) {
	t.Run("Conventional", func(t *testing.T) {
		m, _ := newTestManager()

		mp, err := m.Mapper(&testmodels.Customer{})
		if err != nil {
			t.Fatalf("Failed to get mapper: %v", err)
		}
		if _, ok := mp.Map().(*testmodels.CustomerMap); !ok {
			t.Fatalf("Expected *testmodels.CustomerMap, got %T", mp.Map())
		}
		if mp.Map().TableName() != "customers" {
			t.Fatalf("Expected table customers, got %q", mp.Map().TableName())
		}
	})

	t.Run("DefaultFallback", func(t *testing.T) {
		m, _ := newTestManager()

		mp, err := m.Mapper(&gadget{})
		if err != nil {
			t.Fatalf("Failed to get mapper: %v", err)
		}
		if _, ok := mp.Map().(*mapping.EntityMap); !ok {
			t.Fatalf("Expected *mapping.EntityMap, got %T", mp.Map())
		}
		if mp.Map().TableName() != "gadgets" {
			t.Fatalf("Expected table gadgets, got %q", mp.Map().TableName())
		}
		if mp.Map().KeyName() != "id" {
			t.Fatalf("Expected key id, got %q", mp.Map().KeyName())
		}
	})
}

func TestMapperConnectionRouting(t *testing.T) {
	main := connection.NewMemory("main")
	reporting := connection.NewMemory("reporting")
	provider := connection.NewStaticProvider(main).WithConnection(reporting)
	m := New(provider, event.NewMemoryDispatcher())

	t.Run("DefaultConnection", func(t *testing.T) {
		mp, err := m.Mapper(&product{})
		if err != nil {
			t.Fatalf("Failed to get mapper: %v", err)
		}
		if mp.Connection().Name() != "main" {
			t.Fatalf("Expected connection main, got %q", mp.Connection().Name())
		}
	})

	t.Run("NamedConnection", func(t *testing.T) {
		em := &productMap{EntityMap: mapping.EntityMap{ConnectionName: "reporting"}}
		mp, err := m.Mapper(&gadget{}, em)
		if err != nil {
			t.Fatalf("Failed to get mapper: %v", err)
		}
		if mp.Connection().Name() != "reporting" {
			t.Fatalf("Expected connection reporting, got %q", mp.Connection().Name())
		}
	})

	t.Run("UnknownConnection", func(t *testing.T) {
		em := &productMap{EntityMap: mapping.EntityMap{ConnectionName: "archive"}}
		_, err := m.Mapper("warehouse.Pallet", em)
		if !errors.IsUnknownConnection(err) {
			t.Fatalf("Expected unknown connection error, got %v", err)
		}
	})
}

func TestRepository(t *testing.T) {
	m, _ := newTestManager()

	repo, err := m.Repository(&product{})
	if err != nil {
		t.Fatalf("Failed to get repository: %v", err)
	}
	again, err := m.Repository(&product{})
	if err != nil {
		t.Fatalf("Failed to get repository again: %v", err)
	}
	if repo != again {
		t.Fatal("Expected the same repository instance on every call")
	}

	mp, err := m.Mapper(&product{})
	if err != nil {
		t.Fatalf("Failed to get mapper: %v", err)
	}
	if repo.Mapper() != mp {
		t.Fatal("Expected repository to wrap the cached mapper")
	}
}

func TestValueObjects(t *testing.T) {
	t.Run("ConventionalFactory", func(t *testing.T) {
		m, _ := newTestManager()

		first, err := m.ValueMap(&testmodels.Money{})
		if err != nil {
			t.Fatalf("Failed to get value map: %v", err)
		}
		second, err := m.ValueMap(&testmodels.Money{})
		if err != nil {
			t.Fatalf("Failed to get value map again: %v", err)
		}
		if first == second {
			t.Fatal("Expected a fresh value map per call")
		}
		if first.ValueType() != "testmodels.Money" {
			t.Fatalf("Expected value type testmodels.Money, got %q", first.ValueType())
		}
		attrs := first.Attributes()
		if len(attrs) != 2 || attrs[0] != "amount" || attrs[1] != "currency" {
			t.Fatalf("Expected [amount currency], got %v", attrs)
		}
	})

	t.Run("ExplicitFactory", func(t *testing.T) {
		m, _ := newTestManager()

		err := m.RegisterValueObject(&testmodels.Money{}, func() mapping.ValueMapping {
			return &mapping.ValueMap{Columns: []string{"cents"}}
		})
		if err != nil {
			t.Fatalf("Failed to register value object: %v", err)
		}
		vm, err := m.ValueMap(&testmodels.Money{})
		if err != nil {
			t.Fatalf("Failed to get value map: %v", err)
		}
		if len(vm.Attributes()) != 1 || vm.Attributes()[0] != "cents" {
			t.Fatalf("Expected [cents], got %v", vm.Attributes())
		}
	})

	t.Run("MissingConventionalFactory", func(t *testing.T) {
		m, _ := newTestManager()

		type coordinates struct{ Lat, Lng float64 }
		_, err := m.ValueMap(&coordinates{})
		if !errors.IsMissingMapping(err) {
			t.Fatalf("Expected missing mapping error, got %v", err)
		}
	})
}

func TestRegisterGlobalEvent(t *testing.T) {
	m, _ := newTestManager()

	if err := m.RegisterGlobalEvent(event.Stored, func(ctx context.Context, e event.Event) error {
		return nil
	}); err != nil {
		t.Fatalf("Failed to register handler: %v", err)
	}

	err := m.RegisterGlobalEvent(event.Name("saved"), func(ctx context.Context, e event.Event) error {
		return nil
	})
	if !errors.IsUnknownEvent(err) {
		t.Fatalf("Expected unknown event error, got %v", err)
	}
}

func TestRegisterPlugin(t *testing.T) {
	t.Run("RegistersThroughManager", func(t *testing.T) {
		m, _ := newTestManager()

		plugin := PluginFunc(func(m *Manager) error {
			return m.Register(&product{}, &productMap{})
		})
		if err := m.RegisterPlugin(plugin); err != nil {
			t.Fatalf("Failed to register plugin: %v", err)
		}
		if !m.IsRegistered(&product{}) {
			t.Fatal("Expected plugin registration to stick")
		}
	})

	t.Run("PropagatesErrors", func(t *testing.T) {
		m, _ := newTestManager()

		boom := stderrors.New("plugin exploded")
		err := m.RegisterPlugin(PluginFunc(func(m *Manager) error { return boom }))
		if err != boom {
			t.Fatalf("Expected the plugin error unchanged, got %v", err)
		}
	})
}

func TestMapperInitializationVeto(t *testing.T) {
	m, _ := newTestManager()

	rejected := false
	err := m.RegisterGlobalEvent(event.Initializing, func(ctx context.Context, e event.Event) error {
		if !rejected {
			rejected = true
			return stderrors.New("not yet")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to register handler: %v", err)
	}

	if _, err := m.Mapper(&product{}); err == nil {
		t.Fatal("Expected the first construction to be vetoed")
	}

	// Veto must not poison the cache
	mp, err := m.Mapper(&product{})
	if err != nil {
		t.Fatalf("Failed to get mapper after veto: %v", err)
	}
	if mp == nil {
		t.Fatal("Expected a mapper")
	}
}
