/*
Package tracing provides lightweight request tracing for the HTTP API.

Each request gets a span whose trace id is a UUID carried in X-Request-ID.
Clients that send a valid UUID in that header continue their own trace;
the id is always echoed back so bug reports can quote it. Finished spans
are logged by a background collector through zap.

	tracer := tracing.New("pocketos", logger.Logger)
	defer tracer.Close()
	router.Use(tracing.HTTPMiddleware(tracer))

Manual spans:

	span, ctx := tracer.StartSpan(ctx, "catalog.load")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()
*/
package tracing
