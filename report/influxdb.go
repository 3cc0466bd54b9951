package report

import (
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/sirupsen/logrus"

	"github.com/violenttestpen/lightbench/bench"
	"github.com/violenttestpen/lightbench/clock"
	"github.com/violenttestpen/lightbench/estimate"
)

// pointWriter is the part of the InfluxDB write API the reporter uses.
type pointWriter interface {
	WritePoint(point *write.Point)
	Flush()
}

// InfluxDB sends every report as a point to an InfluxDB bucket. Writes are
// batched and asynchronous; Close flushes them.
type InfluxDB struct {
	client influxdb2.Client
	writer pointWriter
	now    func() time.Time
}

// NewInfluxDB connects to the InfluxDB instance at baseURL. Asynchronous
// write errors are logged to log.
func NewInfluxDB(baseURL, authToken, org, bucket string, log logrus.FieldLogger) *InfluxDB {
	options := influxdb2.DefaultOptions()
	options.WriteOptions().SetBatchSize(1000)
	options.WriteOptions().SetFlushInterval(250)

	client := influxdb2.NewClientWithOptions(baseURL, authToken, options)
	writeAPI := client.WriteAPI(org, bucket)

	errorsCh := writeAPI.Errors()
	go func() {
		for err := range errorsCh {
			log.WithError(err).Warn("influxdb async write failed")
		}
	}()

	return &InfluxDB{client: client, writer: writeAPI, now: time.Now}
}

// Close flushes pending points and releases the client.
func (i *InfluxDB) Close() {
	i.writer.Flush()
	if i.client != nil {
		i.client.Close()
	}
}

func (i *InfluxDB) Progress(operation string, percent float64) {
	p := influxdb2.NewPointWithMeasurement("lightbench_progress").
		AddTag("operation", operation).
		AddField("percent", percent).
		SetTime(i.now())
	i.writer.WritePoint(p)
}

func (i *InfluxDB) OperationResult(operation string, est estimate.Estimate, unit clock.TimeUnit) {
	p := influxdb2.NewPointWithMeasurement("lightbench_result").
		AddTag("operation", operation).
		AddTag("unit", unit.String()).
		AddField("median", est.Median).
		SetTime(i.now())
	if v, err := est.Error(); err == nil {
		p.AddField("error", v)
	}
	i.writer.WritePoint(p)
}

func (i *InfluxDB) OperationElapsed(operation string, elapsed float64, unit clock.TimeUnit) {
	p := influxdb2.NewPointWithMeasurement("lightbench_elapsed").
		AddTag("operation", operation).
		AddTag("unit", unit.String()).
		AddField("elapsed", elapsed).
		SetTime(i.now())
	i.writer.WritePoint(p)
}

func (i *InfluxDB) Summary(s *bench.Summary) {
	p := influxdb2.NewPointWithMeasurement("lightbench_run").
		AddTag("outcome", s.Outcome.String()).
		AddTag("unit", s.Unit.String()).
		AddField("operations", len(s.Results)).
		AddField("measured", len(s.Measured())).
		AddField("total_elapsed", s.TotalElapsed()).
		SetTime(i.now())
	i.writer.WritePoint(p)
}
