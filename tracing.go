package bandura

import (
	"io"

	opentracing "github.com/opentracing/opentracing-go"
	zipkinot "github.com/openzipkin-contrib/zipkin-go-opentracing"
	"github.com/openzipkin/zipkin-go"
	zipkinhttp "github.com/openzipkin/zipkin-go/reporter/http"
)

// NewZipkinTracer builds an opentracing.Tracer reporting spans to a
// Zipkin collector, suitable for WithTracer. The returned closer
// flushes the reporter; close it once the tree is done running.
func NewZipkinTracer(collectorURL, serviceName, hostPort string) (opentracing.Tracer, io.Closer, error) {
	reporter := zipkinhttp.NewReporter(collectorURL)

	endpoint, err := zipkin.NewEndpoint(serviceName, hostPort)
	if err != nil {
		reporter.Close()
		return nil, nil, err
	}

	tracer, err := zipkin.NewTracer(reporter, zipkin.WithLocalEndpoint(endpoint))
	if err != nil {
		reporter.Close()
		return nil, nil, err
	}

	return zipkinot.Wrap(tracer), reporter, nil
}
