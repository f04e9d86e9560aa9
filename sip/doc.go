// Package sip provides the SIP message model used by the branch id logic:
// parsing and rendering of requests and responses as defined in RFC 3261 Section 7,
// and accessors for the call-identifying fields, the Via chain and the Contact list.
//
// Transactions and transports live outside of this module; a message here is a plain value.
package sip
