package httpapi

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// LambdaHandler adapts API Gateway proxy events onto the mux router so the
// same route table serves both deployments.
func LambdaHandler(router http.Handler) func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		query := url.Values{}
		for k, vs := range req.MultiValueQueryStringParameters {
			for _, v := range vs {
				query.Add(k, v)
			}
		}
		for k, v := range req.QueryStringParameters {
			if _, ok := query[k]; !ok {
				query.Set(k, v)
			}
		}
		u := url.URL{Path: req.Path, RawQuery: query.Encode()}

		httpReq, err := http.NewRequestWithContext(ctx, req.HTTPMethod, u.String(), strings.NewReader(req.Body))
		if err != nil {
			return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, nil
		}
		for k, v := range req.Headers {
			httpReq.Header.Set(k, v)
		}

		rec := &proxyResponseWriter{header: http.Header{}, status: http.StatusOK}
		router.ServeHTTP(rec, httpReq)

		headers := make(map[string]string, len(rec.header))
		for k := range rec.header {
			headers[k] = rec.header.Get(k)
		}

		return events.APIGatewayProxyResponse{
			StatusCode: rec.status,
			Headers:    headers,
			Body:       rec.body.String(),
		}, nil
	}
}

type proxyResponseWriter struct {
	header http.Header
	body   bytes.Buffer
	status int
}

func (w *proxyResponseWriter) Header() http.Header { return w.header }

func (w *proxyResponseWriter) Write(b []byte) (int, error) { return w.body.Write(b) }

func (w *proxyResponseWriter) WriteHeader(status int) { w.status = status }
