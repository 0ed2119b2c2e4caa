package signal

import "testing"

func TestEmitCallsInConnectionOrder(t *testing.T) {
	var sig Signal[int]
	var order []string
	sig.Listen(func(v int) { order = append(order, "a") })
	sig.Listen(func(v int) { order = append(order, "b") })
	if sig.Emit(1) {
		t.Fatalf("expected listeners not to consume")
	}
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("expected [a b], got %v", order)
	}
}

func TestEmitReportsAnyTrueReturn(t *testing.T) {
	var sig Signal[string]
	sig.Connect(func(string) bool { return false })
	sig.Connect(func(string) bool { return true })
	calls := 0
	sig.Connect(func(string) bool { calls++; return false })
	if !sig.Emit("x") {
		t.Fatalf("expected emit to report true")
	}
	if calls != 1 {
		t.Fatalf("expected later callbacks to run, got %d calls", calls)
	}
}

func TestDisconnectDuringEmitSkipsRemoved(t *testing.T) {
	var sig Signal[int]
	var second Subscription
	secondCalls := 0
	sig.Connect(func(int) bool {
		sig.Disconnect(second)
		return false
	})
	second = sig.Connect(func(int) bool {
		secondCalls++
		return false
	})
	sig.Emit(0)
	if secondCalls != 0 {
		t.Fatalf("expected removed callback to be skipped, got %d calls", secondCalls)
	}
	if sig.Len() != 1 {
		t.Fatalf("expected 1 subscriber, got %d", sig.Len())
	}
}

func TestConnectDuringEmitWaitsForNextEmit(t *testing.T) {
	var sig Signal[int]
	late := 0
	sig.Connect(func(int) bool {
		if sig.Len() == 1 {
			sig.Listen(func(int) { late++ })
		}
		return false
	})
	sig.Emit(0)
	if late != 0 {
		t.Fatalf("expected late subscriber to wait, got %d calls", late)
	}
	sig.Emit(0)
	if late != 1 {
		t.Fatalf("expected late subscriber on next emit, got %d calls", late)
	}
}

func TestDisconnectUnknownIsNoOp(t *testing.T) {
	var sig Signal[int]
	sig.Disconnect(42)
	id := sig.Listen(func(int) {})
	sig.Disconnect(id)
	sig.Disconnect(id)
	if sig.Len() != 0 {
		t.Fatalf("expected no subscribers, got %d", sig.Len())
	}
}
