package influxhelper

import (
	"fmt"
	"strings"

	influxdb "github.com/influxdata/influxdb/client/v2"

	"github.com/bdewet/goalops/pkg/config"
)

func CreateInfluxClient() (influxdb.Client, error) {
	return influxdb.NewHTTPClient(influxdb.HTTPConfig{
		Addr:     config.CurrentInfluxSecrets().InfluxEndpoint,
		Username: config.CurrentInfluxSecrets().InfluxUsername,
		Password: config.CurrentInfluxSecrets().InfluxPassword,
	})
}

func CreateDatabase(influxClient influxdb.Client, name string) error {
	return runCommand(influxClient, fmt.Sprintf("CREATE DATABASE %s", strings.Split(name, " ")[0]), "")
}

// DropSeries removes every point in the measurement carrying the given tag
// value. Influx keys series on the full tag set, so rewriting points whose
// tags changed would leave the old series in place.
func DropSeries(influxClient influxdb.Client, database, measurement, tag, value string) error {
	return runCommand(influxClient, fmt.Sprintf(`DROP SERIES FROM %q WHERE %q = '%s'`, strings.Split(measurement, " ")[0], tag, value), database)
}

func runCommand(influxClient influxdb.Client, command, database string) error {
	q := influxdb.NewQuery(command, database, "")

	response, err := influxClient.Query(q)
	if err != nil {
		return err
	}

	return response.Error()
}
