package chat

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bobmcallan/ava/internal/cache"
	"github.com/bobmcallan/ava/internal/common"
)

func TestPriceHandler_FormatsTurkishPrice(t *testing.T) {
	market := &mockMarket{close: 284.5}
	handler := NewPriceHandler(market, cache.New[float64](150*time.Second), NewPicker(1), common.NewSilentLogger())

	inst := testInstruments()["THY"]
	reply, err := handler.Execute(context.Background(), inst, "thy fiyatı ne kadar", nil)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(reply, "284,50 TL") {
		t.Errorf("reply = %q, want Turkish-formatted price 284,50 TL", reply)
	}
	if !strings.Contains(reply, "Türk Hava Yolları") {
		t.Errorf("reply = %q, want instrument display name", reply)
	}
}

func TestPriceHandler_ServesFromCache(t *testing.T) {
	market := &mockMarket{close: 100.0}
	prices := cache.New[float64](150 * time.Second)
	handler := NewPriceHandler(market, prices, NewPicker(1), common.NewSilentLogger())

	inst := testInstruments()["GARAN"]
	ctx := context.Background()

	if _, err := handler.Execute(ctx, inst, "garanti kaç lira", nil); err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}
	if _, err := handler.Execute(ctx, inst, "garanti kaç lira", nil); err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	if market.closeCalls != 1 {
		t.Errorf("market calls = %d, want 1 (second turn from cache)", market.closeCalls)
	}
}

func TestPriceHandler_ExpiredEntryRefetches(t *testing.T) {
	market := &mockMarket{close: 100.0}
	prices := cache.New[float64](150 * time.Second)

	now := time.Now()
	clock := now
	prices.SetClock(func() time.Time { return clock })

	handler := NewPriceHandler(market, prices, NewPicker(1), common.NewSilentLogger())
	inst := testInstruments()["GARAN"]
	ctx := context.Background()

	if _, err := handler.Execute(ctx, inst, "garanti", nil); err != nil {
		t.Fatal(err)
	}
	clock = now.Add(150 * time.Second) // exactly at TTL: expired

	if _, err := handler.Execute(ctx, inst, "garanti", nil); err != nil {
		t.Fatal(err)
	}
	if market.closeCalls != 2 {
		t.Errorf("market calls = %d, want 2 after expiry", market.closeCalls)
	}
}

func TestPriceHandler_TransientFailureRetriesOnce(t *testing.T) {
	market := &mockMarket{close: 284.5, closeFailures: 1}
	handler := NewPriceHandler(market, cache.New[float64](150*time.Second), NewPicker(1), common.NewSilentLogger())
	handler.retryWait = 0

	inst := testInstruments()["THY"]
	reply, err := handler.Execute(context.Background(), inst, "thy fiyatı", nil)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(reply, "284,50 TL") {
		t.Errorf("reply = %q, want price from the retried fetch", reply)
	}
	if market.closeCalls != 2 {
		t.Errorf("market calls = %d, want 2 (one retry)", market.closeCalls)
	}
}

func TestPriceHandler_FetchFailureReturnsApology(t *testing.T) {
	market := &mockMarket{closeErr: errUnavailable}
	handler := NewPriceHandler(market, cache.New[float64](150*time.Second), NewPicker(1), common.NewSilentLogger())
	handler.retryWait = 0

	inst := testInstruments()["DOLAR"]
	reply, err := handler.Execute(context.Background(), inst, "dolar ne kadar", nil)
	if err != nil {
		t.Fatalf("Execute() error = %v, want templated reply instead", err)
	}
	if !oneOf(reply, priceErrors, func(v string) string { return fmt.Sprintf(v, inst.Name) }) {
		t.Errorf("reply = %q, want one of the price error templates", reply)
	}
	if market.closeCalls != 2 {
		t.Errorf("market calls = %d, want 2 before giving up", market.closeCalls)
	}
}

func TestPriceHandler_CommodityUsesItsOwnCurrency(t *testing.T) {
	market := &mockMarket{close: 2412.3}
	handler := NewPriceHandler(market, cache.New[float64](150*time.Second), NewPicker(1), common.NewSilentLogger())

	inst := testInstruments()["ALTIN"]
	reply, err := handler.Execute(context.Background(), inst, "altın ne durumda", nil)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(reply, "2.412,30 USD") {
		t.Errorf("reply = %q, want grouped USD price 2.412,30 USD", reply)
	}
}
