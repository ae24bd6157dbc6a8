// Package handlers wires the storefront routes: the public catalog, login
// and logout, and the admin product grid. Handlers expect the middlewares
// I18n and SessionScope to run first.
package handlers
