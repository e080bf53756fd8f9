package buses

import (
	"net/http"
	"testing"
	"time"

	"github.com/reshmacodewarrior/BusBookingSystem/test/integration/testutil"
)

func TestGetBus_ByID(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, busClient := env.Setup(t)
	defer env.Cleanup(t, mongo)

	created := mustCreateBus(t, busClient, testutil.NewBusBuilder().Build())

	resp, err := busClient.GetByID(created.ID)
	if err != nil {
		t.Fatalf("get request failed: %v", err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	bus, err := busClient.DecodeBus(resp)
	if err != nil {
		t.Fatalf("failed to decode bus: %v", err)
	}
	if bus.ID != created.ID {
		t.Errorf("expected id %s, got %s", created.ID, bus.ID)
	}
	if bus.BusNumber != created.BusNumber {
		t.Errorf("expected bus_number %s, got %s", created.BusNumber, bus.BusNumber)
	}
	if len(bus.Seats) != len(created.Seats) {
		t.Errorf("expected %d seats, got %d", len(created.Seats), len(bus.Seats))
	}
}

func TestGetBus_NotFound(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, busClient := env.Setup(t)
	defer env.Cleanup(t, mongo)

	resp, err := busClient.GetByID(unknownBusID)
	if err != nil {
		t.Fatalf("get request failed: %v", err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusNotFound)
}

func TestGetBus_MalformedID(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, busClient := env.Setup(t)
	defer env.Cleanup(t, mongo)

	resp, err := busClient.GetByID("not-an-object-id")
	if err != nil {
		t.Fatalf("get request failed: %v", err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
}

func TestListBuses_Empty(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, busClient := env.Setup(t)
	defer env.Cleanup(t, mongo)

	resp, err := busClient.GetAll()
	if err != nil {
		t.Fatalf("list request failed: %v", err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	buses, metadata, err := busClient.DecodeBuses(resp)
	if err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if buses == nil {
		t.Error("expected an empty array, got null")
	}
	if len(buses) != 0 {
		t.Errorf("expected no buses, got %d", len(buses))
	}
	if metadata.TotalCount != 0 {
		t.Errorf("expected total_count 0, got %d", metadata.TotalCount)
	}
}

func TestListBuses_Pagination(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, busClient := env.Setup(t)
	defer env.Cleanup(t, mongo)

	// Created out of departure order; the listing sorts by departure_time
	// ascending, so the earliest departure comes back first.
	base := time.Now().UTC().AddDate(0, 0, 10).Truncate(time.Hour)
	mustCreateBus(t, busClient, testutil.NewBusBuilder().
		WithBusNumber("MH12AB0002").
		WithDeparture(base.Add(6*time.Hour)).
		Build())
	mustCreateBus(t, busClient, testutil.NewBusBuilder().
		WithBusNumber("MH12AB0001").
		WithDeparture(base).
		Build())
	mustCreateBus(t, busClient, testutil.NewBusBuilder().
		WithBusNumber("MH12AB0003").
		WithDeparture(base.Add(12*time.Hour)).
		Build())

	resp, err := busClient.GetPage(2, 0)
	if err != nil {
		t.Fatalf("list request failed: %v", err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	buses, metadata, err := busClient.DecodeBuses(resp)
	if err != nil {
		t.Fatalf("failed to decode page: %v", err)
	}
	if len(buses) != 2 {
		t.Fatalf("expected 2 buses on the first page, got %d", len(buses))
	}
	if metadata.TotalCount != 3 {
		t.Errorf("expected total_count 3, got %d", metadata.TotalCount)
	}
	if metadata.Limit != 2 {
		t.Errorf("expected limit 2, got %d", metadata.Limit)
	}
	if metadata.Offset != 0 {
		t.Errorf("expected offset 0, got %d", metadata.Offset)
	}
	if buses[0].BusNumber != "MH12AB0001" || buses[1].BusNumber != "MH12AB0002" {
		t.Errorf("expected departure-ordered page [MH12AB0001 MH12AB0002], got [%s %s]",
			buses[0].BusNumber, buses[1].BusNumber)
	}

	resp, err = busClient.GetPage(2, 2)
	if err != nil {
		t.Fatalf("list request failed: %v", err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	buses, metadata, err = busClient.DecodeBuses(resp)
	if err != nil {
		t.Fatalf("failed to decode page: %v", err)
	}
	if len(buses) != 1 {
		t.Fatalf("expected 1 bus on the second page, got %d", len(buses))
	}
	if buses[0].BusNumber != "MH12AB0003" {
		t.Errorf("expected MH12AB0003 on the second page, got %s", buses[0].BusNumber)
	}
	if metadata.Offset != 2 {
		t.Errorf("expected offset 2, got %d", metadata.Offset)
	}
}

func TestListBuses_InvalidPagination(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, busClient := env.Setup(t)
	defer env.Cleanup(t, mongo)

	resp, err := busClient.GetPageRaw("abc", "0")
	if err != nil {
		t.Fatalf("list request failed: %v", err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
}
