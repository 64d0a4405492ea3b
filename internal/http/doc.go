// Package http provides the HTML-facing handlers and middleware for the
// booking portal.
//
// The router exposes the following endpoints:
//   - GET /: embedded static landing page with the registration and login
//     forms, plus the stylesheet under /styles.css.
//   - POST /usuario-register: creates an account from the form fields
//     name, email, password, and role, then renders a confirmation page
//     with a login link. A duplicate email renders an error page with
//     status 409.
//   - POST /usuario-login: authenticates the form fields email and
//     password, sets the `session_token` cookie, and redirects to
//     /dashboard. Unknown emails and wrong passwords render distinct
//     error pages with status 401.
//   - GET /dashboard: role-specific dashboard. Clients get the booking
//     form with the professional list; professionals get their
//     reservation list. Anonymous visitors are redirected to /.
//   - POST /reservar: creates a reservation from the form fields
//     profesional_id and fecha. Only authenticated clients may book;
//     everyone else gets a 403 error page.
//   - GET /logout: revokes the current session, clears the cookie, and
//     redirects to /.
//
// All pages are rendered through html/template from the embedded
// templates/ directory, so user-supplied values are escaped on output.
package http
