package lib

import (
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSessionSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	defer otel.SetTracerProvider(previous)

	g := newTestGame(t, rowScenario(3, squad("a1", SideA, "h0")), DefaultOptions())
	advanceTo(t, g, Movement, SideA)
	mustSubmit(t, g, Order{Kind: MoveOrder, Entity: "a1", Path: []HexID{"h1"}})
	g.SubmitOrder(ctx, Order{Kind: MoveOrder, Entity: "a1", Path: []HexID{"h2"}})

	var advances, orders []sdktrace.ReadOnlySpan
	for _, span := range recorder.Ended() {
		switch span.Name() {
		case "GameState.AdvancePhase":
			advances = append(advances, span)
		case "GameState.SubmitOrder":
			orders = append(orders, span)
		}
	}
	if len(advances) != 2 || len(orders) != 2 {
		t.Fatalf("Expected 2 phase and 2 order spans, got %d and %d", len(advances), len(orders))
	}
	if orders[0].Status().Code == codes.Error {
		t.Error("Accepted order span should not be an error")
	}
	if status := orders[1].Status(); status.Code != codes.Error || status.Description != string(ReasonAlreadyMoved) {
		t.Errorf("Unexpected status of the refused order span %+v", status)
	}
	found := false
	for _, attr := range orders[0].Attributes() {
		if attr.Key == "session" && attr.Value.AsString() == g.ID() {
			found = true
		}
	}
	if !found {
		t.Error("Order span should carry the session id")
	}
}

func TestSessionLogging(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	options := DefaultOptions()
	options.Logger = zap.New(core)

	g := newTestGame(t, rowScenario(3, squad("a1", SideA, "h0")), options)
	advanceTo(t, g, Movement, SideA)
	mustSubmit(t, g, Order{Kind: MoveOrder, Entity: "a1", Path: []HexID{"h1"}})
	g.SubmitOrder(ctx, Order{Kind: PrepFireOrder, Entity: "a1", Target: "a1"})

	executed := logs.FilterMessage("order executed").All()
	if len(executed) != 1 || executed[0].ContextMap()["session"] != g.ID() {
		t.Errorf("Unexpected executed order log %+v", executed)
	}
	refused := logs.FilterMessage("order refused").All()
	if len(refused) != 1 || refused[0].ContextMap()["reason"] != string(ReasonWrongPhase) {
		t.Errorf("Unexpected refused order log %+v", refused)
	}
}
