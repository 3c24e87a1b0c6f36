// Package oracle computes the trusted expected result of an arithmetic case.
//
// The subject under test follows C-style integer semantics: division truncates
// toward zero and the remainder takes the sign of the dividend. Every backend
// in this package must reproduce exactly that convention and render results in
// canonical decimal form.
package oracle
