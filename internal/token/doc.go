// Package token splits raw text into offset-preserving sentences of tokens.
//
// Every strategy obeys the same invariant: concatenating the tokens of the
// returned sentences, whitespace included, reproduces the tokenized text
// byte for byte, so character offsets computed by walking the token stream
// are always exact. Strategies are selected once at startup; switching the
// strategy never changes the behavior of any downstream component.
package token
