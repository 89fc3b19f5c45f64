// Package controller owns the state of the entries screen: the displayed
// list, the create/edit form, the search/filter query, the expanded entry and
// the current message.
//
// Every user action maps to one Controller method. A method validates
// locally, calls the API, and reconciles the result back into State. The
// displayed list is always a verbatim server snapshot: after each successful
// mutation the whole list is fetched again instead of being patched.
//
// List requests (fetch, search, filter) are cancel-and-replace. Starting one
// cancels the request in flight, and only the response of the most recently
// started request is applied; older ones return ErrSuperseded. Mutations and
// title/tag generation are not serialized against each other.
//
// A Controller is safe for concurrent use. Network calls run without the
// state lock held.
package controller
