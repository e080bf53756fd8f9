package buses

import (
	"net/http"
	"testing"

	"github.com/reshmacodewarrior/BusBookingSystem/pkg/model"
	"github.com/reshmacodewarrior/BusBookingSystem/test/integration/testutil"
)

func TestUpdateBus_PartialFields(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, busClient := env.Setup(t)
	defer env.Cleanup(t, mongo)

	created := mustCreateBus(t, busClient, testutil.NewBusBuilder().Build())

	resp, err := busClient.Update(created.ID, model.BusUpdate{
		BusName: "Airavat Club Class",
		BusType: model.BusTypeSleeper,
	})
	if err != nil {
		t.Fatalf("update request failed: %v", err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	updated, err := busClient.DecodeBus(resp)
	if err != nil {
		t.Fatalf("failed to decode updated bus: %v", err)
	}
	if updated.BusName != "Airavat Club Class" {
		t.Errorf("expected updated bus_name, got %q", updated.BusName)
	}
	if updated.BusType != model.BusTypeSleeper {
		t.Errorf("expected updated bus_type sleeper, got %s", updated.BusType)
	}
	if updated.BusNumber != created.BusNumber {
		t.Errorf("expected bus_number untouched, got %q", updated.BusNumber)
	}
	if updated.Source != created.Source || updated.Destination != created.Destination {
		t.Errorf("expected route untouched, got %s-%s", updated.Source, updated.Destination)
	}
	if len(updated.Seats) != len(created.Seats) {
		t.Errorf("expected seats untouched, got %d of %d", len(updated.Seats), len(created.Seats))
	}

	stored := mongo.FindBus(t, created.ID)
	if stored.BusName != "Airavat Club Class" {
		t.Errorf("expected update persisted, DB has %q", stored.BusName)
	}
	if stored.BusType != model.BusTypeSleeper {
		t.Errorf("expected bus_type persisted, DB has %s", stored.BusType)
	}
}

func TestUpdateBus_NotFound(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, busClient := env.Setup(t)
	defer env.Cleanup(t, mongo)

	resp, err := busClient.Update(unknownBusID, model.BusUpdate{BusName: "Nowhere Express"})
	if err != nil {
		t.Fatalf("update request failed: %v", err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusNotFound)
}

func TestUpdateBus_ValidationError(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, busClient := env.Setup(t)
	defer env.Cleanup(t, mongo)

	created := mustCreateBus(t, busClient, testutil.NewBusBuilder().Build())

	resp, err := busClient.Update(created.ID, model.BusUpdate{BusName: "A"})
	if err != nil {
		t.Fatalf("update request failed: %v", err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusUnprocessableEntity)

	stored := mongo.FindBus(t, created.ID)
	if stored.BusName != created.BusName {
		t.Errorf("expected bus_name untouched after rejected update, DB has %q", stored.BusName)
	}
}

func TestUpdateBus_MalformedBody(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, busClient := env.Setup(t)
	defer env.Cleanup(t, mongo)

	created := mustCreateBus(t, busClient, testutil.NewBusBuilder().Build())

	resp, err := busClient.UpdateRaw(created.ID, []byte(`{"bus_name": `))
	if err != nil {
		t.Fatalf("update request failed: %v", err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
}

func TestDeleteBus(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, busClient := env.Setup(t)
	defer env.Cleanup(t, mongo)

	created := mustCreateBus(t, busClient, testutil.NewBusBuilder().Build())

	resp, err := busClient.Delete(created.ID)
	if err != nil {
		t.Fatalf("delete request failed: %v", err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusNoContent)
	if len(resp.Body) != 0 {
		t.Errorf("expected empty body on delete, got %q", string(resp.Body))
	}

	if count := mongo.CountDocuments(t, testutil.BusesCollection); count != 0 {
		t.Errorf("expected 0 documents after delete, got %d", count)
	}

	resp, err = busClient.GetByID(created.ID)
	if err != nil {
		t.Fatalf("get request failed: %v", err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusNotFound)
}

func TestDeleteBus_NotFound(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, busClient := env.Setup(t)
	defer env.Cleanup(t, mongo)

	resp, err := busClient.Delete(unknownBusID)
	if err != nil {
		t.Fatalf("delete request failed: %v", err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusNotFound)
}
