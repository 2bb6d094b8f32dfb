package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// statusClientClosed is the nginx convention for a request abandoned by the client.
const statusClientClosed = 499

// ErrorHandler renders every handler error as a ResponseError JSON body.
func ErrorHandler(log Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if err == nil || c.Response().Committed {
			return
		}

		resp := &ResponseError{
			Status:  http.StatusInternalServerError,
			Success: false,
			Err:     err,
		}

		var (
			httpErr *echo.HTTPError
			respErr *ResponseError
		)
		switch {
		case errors.As(err, &httpErr):
			resp.Status = httpErr.Code
			resp.ErrorMessage = fmt.Sprint(httpErr.Message)
		case errors.As(err, &respErr):
			resp = respErr
		case errors.Is(err, context.Canceled) && errors.Is(c.Request().Context().Err(), context.Canceled):
			resp.Status = statusClientClosed
		default:
			if st, ok := status.FromError(err); ok && st.Code() != codes.Unknown {
				resp.Status = httpStatus(st.Code())
				resp.ErrorCode = st.Code().String()
				resp.ErrorMessage = st.Message()
			}
		}

		if resp.Status == http.StatusNotFound && isNotFoundHandler(c.Handler()) {
			resp.ErrorMessage = "no route matched"
		}

		if err := c.JSON(resp.Status, resp); err != nil {
			log.Errorw("could not response", "code", resp.Status, "response_body", resp)
		}
	}
}

func httpStatus(code codes.Code) int {
	switch code {
	case codes.InvalidArgument, codes.FailedPrecondition, codes.OutOfRange:
		return http.StatusBadRequest
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.NotFound:
		return http.StatusNotFound
	case codes.AlreadyExists, codes.Aborted:
		return http.StatusConflict
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
