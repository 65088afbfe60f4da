// Package http provides Laravel-compatible request and response helpers.
//
// # Request
//
// Request wraps *http.Request with a fluent API mirroring Laravel's
// Illuminate\Http\Request.
//
//	req := gohttp.NewRequest(r)
//
//	var payload struct {
//	    Name string `json:"name"`
//	}
//	if err := req.Bind(&payload); err != nil { ... }
//
//	name := req.Input("name", "default")
//	all  := req.Inputs()          // map[string]any, body over query
//	ok   := req.Has("name")       // present, even when blank
//	ok    = req.Filled("name")    // present and non-blank
//
//	// Route params (requires Chi router)
//	id     := req.RouteParam("id")
//	params := req.RouteAttributes() // map[string]any, empty ones dropped
//
// Request satisfies actions.RouteRequest, so it can back a controller-mode
// actions.Context.
//
// # Response
//
//	res := gohttp.NewResponse(w)
//	res.Success(data)             // 200 {"data": ...}
//	res.Created(data)             // 201 {"data": ...}
//	res.NotFound()                // 404 {"message": "Not found."}
//	res.Failure(err)              // 404 / 422 / 500 depending on the action error
package http
