// Package subject drives the arbitrary-precision implementation under test.
//
// A Subject receives the four-line protocol input (operand kind, A, operator,
// B) and answers with its raw output and exit status. ProcessSubject launches
// a fresh external process per case and enforces a wall-clock timeout;
// FuncSubject adapts an in-process function to the same contract.
package subject
