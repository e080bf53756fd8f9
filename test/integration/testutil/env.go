package testutil

import (
	"fmt"
	"os"
	"testing"

	"github.com/reshmacodewarrior/BusBookingSystem/pkg/client"
)

// EnvRunIntegration gates the suite: the tests drive a running service over
// HTTP and need a reachable MongoDB, so they skip unless it is set. The
// target service should run with RATE_LIMIT_REQUESTS raised well above the
// default; the suite sends every request from one address.
const EnvRunIntegration = "TEST_INTEGRATION"

type TestEnv struct {
	MongoURI     string
	DatabaseName string
	ServerURL    string
	ServerPort   string
}

func NewTestEnv() *TestEnv {
	mongoURI := getEnv("TEST_MONGO_URI", DefaultMongoURI)
	dbName := getEnv("TEST_DB_NAME", DefaultDatabaseName)
	serverPort := getEnv("TEST_SERVER_PORT", "8080")
	serverURL := getEnv("TEST_SERVER_URL", fmt.Sprintf("http://localhost:%s", serverPort))

	return &TestEnv{
		MongoURI:     mongoURI,
		DatabaseName: dbName,
		ServerURL:    serverURL,
		ServerPort:   serverPort,
	}
}

func (e *TestEnv) Setup(t *testing.T) (*MongoHelper, *client.BusClient) {
	t.Helper()

	if os.Getenv(EnvRunIntegration) == "" {
		t.Skipf("set %s=1 to run integration tests against a live service", EnvRunIntegration)
	}

	mongo := NewMongoHelper(t, e.MongoURI, e.DatabaseName)
	mongo.CleanDatabase(t)

	busClient := client.NewBusClient(e.ServerURL)
	if err := busClient.WaitForHealthy(DefaultHealthCheckTimeout); err != nil {
		t.Fatalf("service is not reachable: %v", err)
	}

	return mongo, busClient
}

func (e *TestEnv) Cleanup(t *testing.T, mongo *MongoHelper) {
	t.Helper()

	if mongo != nil {
		mongo.CleanDatabase(t)
		mongo.Close(t)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
