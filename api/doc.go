/*
Package api exposes a vault engine over HTTP.

All responses are JSON encoded. A failed request is answered with

	{"code": <registered error code>, "log": "<description>"}

so that a client can restore the error kind using errors.FromCode.
*/
package api
