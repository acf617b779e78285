// Package api maps the remote Gen Z translator resources onto typed Go calls.
//
// There are four facades: Translation, Auth, Profiles and Community. Each
// method performs exactly one request through a Requester (normally an
// *httpclient.Client) and returns the decoded body. Facades never retry,
// cache or reshape responses; failures come back as the pipeline's
// *httpclient.APIError.
package api
