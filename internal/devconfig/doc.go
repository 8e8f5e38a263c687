// Package devconfig persists Confluence development defaults (base URL,
// username, password) in the DEV section of an INI file in the user's home
// directory, and implements the init pipeline that collects them.
//
// A DEV section is never overwritten in place: the previous one is first
// copied to DEV_<timestamp>.
package devconfig
