// Package buildsys implements the two build commands of coala-quickstart (test and docs).
// Every command is a short list of external steps which are executed through the mvdan.cc/sh
// interpreter. The first failing step ends the command and its status becomes the exit code.
package buildsys
