package service

import (
	"errors"
	"fmt"
	"testing"
)

func TestSagaRunsAllSteps(t *testing.T) {
	var journal []string
	var tx saga
	for i := 1; i <= 3; i++ {
		i := i
		tx.add(fmt.Sprintf("step%d", i),
			func() error { journal = append(journal, fmt.Sprintf("do%d", i)); return nil },
			func() error { journal = append(journal, fmt.Sprintf("undo%d", i)); return nil })
	}

	if err := tx.run(); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	want := []string{"do1", "do2", "do3"}
	if len(journal) != len(want) {
		t.Fatalf("journal = %v, want %v", journal, want)
	}
	for i := range want {
		if journal[i] != want[i] {
			t.Errorf("journal[%d] = %s, want %s", i, journal[i], want[i])
		}
	}
}

func TestSagaCompensatesInReverseOrder(t *testing.T) {
	var journal []string
	boom := errors.New("boom")

	var tx saga
	tx.add("step1",
		func() error { journal = append(journal, "do1"); return nil },
		func() error { journal = append(journal, "undo1"); return nil })
	tx.add("step2",
		func() error { journal = append(journal, "do2"); return nil },
		func() error { journal = append(journal, "undo2"); return nil })
	tx.add("step3",
		func() error { return boom },
		func() error { t.Error("undo of the failed step must not run"); return nil })

	err := tx.run()
	if !errors.Is(err, ErrStoreWrite) {
		t.Fatalf("err = %v, want ErrStoreWrite", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("err should wrap the original cause, got %v", err)
	}

	want := []string{"do1", "do2", "undo2", "undo1"}
	if len(journal) != len(want) {
		t.Fatalf("journal = %v, want %v", journal, want)
	}
	for i := range want {
		if journal[i] != want[i] {
			t.Errorf("journal[%d] = %s, want %s", i, journal[i], want[i])
		}
	}
}

func TestSagaUndoFailureIsCompensationError(t *testing.T) {
	boom := errors.New("boom")
	undoBoom := errors.New("undo boom")

	var tx saga
	tx.add("decrement",
		func() error { return nil },
		func() error { return undoBoom })
	tx.add("insert",
		func() error { return boom },
		func() error { return nil })

	err := tx.run()
	var compErr *CompensationError
	if !errors.As(err, &compErr) {
		t.Fatalf("err = %v, want *CompensationError", err)
	}
	if compErr.Step != "decrement" {
		t.Errorf("failed step = %s, want decrement", compErr.Step)
	}
	if !errors.Is(err, undoBoom) {
		t.Errorf("err should wrap the undo error, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("err should wrap the original cause, got %v", err)
	}
}

func TestSagaEmptyRun(t *testing.T) {
	var tx saga
	if err := tx.run(); err != nil {
		t.Fatalf("empty saga should succeed, got %v", err)
	}
}
