package buses

import (
	"net/http"
	"testing"
	"time"

	"github.com/reshmacodewarrior/BusBookingSystem/test/integration/testutil"
)

func TestSearchBuses_MatchesTravelDay(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, busClient := env.Setup(t)
	defer env.Cleanup(t, mongo)

	day := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	// Two Mumbai-Pune departures on the travel day, one the day after, and
	// one unrelated route on the same day.
	morning := mustCreateBus(t, busClient, testutil.NewBusBuilder().
		WithBusNumber("MH12AB0001").
		WithDeparture(day.Add(6*time.Hour)).
		Build())
	night := mustCreateBus(t, busClient, testutil.NewBusBuilder().
		WithBusNumber("MH12AB0002").
		WithDeparture(day.Add(23*time.Hour)).
		Build())
	mustCreateBus(t, busClient, testutil.NewBusBuilder().
		WithBusNumber("MH12AB0003").
		WithDeparture(day.AddDate(0, 0, 1).Add(6*time.Hour)).
		Build())
	mustCreateBus(t, busClient, testutil.NewBusBuilder().
		WithBusNumber("KA01CD0004").
		WithRoute("Bengaluru", "Mysuru").
		WithDeparture(day.Add(8*time.Hour)).
		Build())

	resp, err := busClient.Search("Mumbai", "Pune", testutil.TravelDate(day))
	if err != nil {
		t.Fatalf("search request failed: %v", err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	buses, err := busClient.DecodeBusList(resp)
	if err != nil {
		t.Fatalf("failed to decode search results: %v", err)
	}
	if len(buses) != 2 {
		t.Fatalf("expected 2 buses for the travel day, got %d", len(buses))
	}
	if buses[0].ID != morning.ID || buses[1].ID != night.ID {
		t.Errorf("expected departure-ordered results [%s %s], got [%s %s]",
			morning.BusNumber, night.BusNumber, buses[0].BusNumber, buses[1].BusNumber)
	}
}

func TestSearchBuses_WhitespaceTolerantRoute(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, busClient := env.Setup(t)
	defer env.Cleanup(t, mongo)

	day := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	mustCreateBus(t, busClient, testutil.NewBusBuilder().
		WithDeparture(day.Add(10*time.Hour)).
		Build())

	resp, err := busClient.Search("  Mumbai ", " Pune  ", testutil.TravelDate(day))
	if err != nil {
		t.Fatalf("search request failed: %v", err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	buses, err := busClient.DecodeBusList(resp)
	if err != nil {
		t.Fatalf("failed to decode search results: %v", err)
	}
	if len(buses) != 1 {
		t.Fatalf("expected padded route terms to match, got %d buses", len(buses))
	}
}

func TestSearchBuses_RouteCaseIsExact(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, busClient := env.Setup(t)
	defer env.Cleanup(t, mongo)

	day := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	mustCreateBus(t, busClient, testutil.NewBusBuilder().
		WithDeparture(day.Add(10*time.Hour)).
		Build())

	resp, err := busClient.Search("mumbai", "pune", testutil.TravelDate(day))
	if err != nil {
		t.Fatalf("search request failed: %v", err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	buses, err := busClient.DecodeBusList(resp)
	if err != nil {
		t.Fatalf("failed to decode search results: %v", err)
	}
	if len(buses) != 0 {
		t.Errorf("expected lowercase route terms to match nothing, got %d buses", len(buses))
	}
}

func TestSearchBuses_NoMatches(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, busClient := env.Setup(t)
	defer env.Cleanup(t, mongo)

	day := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	mustCreateBus(t, busClient, testutil.NewBusBuilder().
		WithDeparture(day.Add(10*time.Hour)).
		Build())

	resp, err := busClient.Search("Mumbai", "Pune", testutil.TravelDate(day.AddDate(0, 0, 3)))
	if err != nil {
		t.Fatalf("search request failed: %v", err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	buses, err := busClient.DecodeBusList(resp)
	if err != nil {
		t.Fatalf("failed to decode search results: %v", err)
	}
	if buses == nil {
		t.Error("expected an empty array, got null")
	}
	if len(buses) != 0 {
		t.Errorf("expected no buses, got %d", len(buses))
	}
}

func TestSearchBuses_InvalidQuery(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, busClient := env.Setup(t)
	defer env.Cleanup(t, mongo)

	tests := []struct {
		name        string
		source      string
		destination string
		travelDate  string
	}{
		{"missing source", "", "Pune", "2026-09-14"},
		{"missing destination", "Mumbai", "", "2026-09-14"},
		{"missing travel date", "Mumbai", "Pune", ""},
		{"wrong date layout", "Mumbai", "Pune", "14-09-2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := busClient.Search(tt.source, tt.destination, tt.travelDate)
			if err != nil {
				t.Fatalf("search request failed: %v", err)
			}
			testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
		})
	}
}
