// Package numeric provides the small node classes spec.md's concrete
// scenarios name: NumberSource, MultiplyBy, IntToText, PrefixText,
// PairEmitter, MethodDispatchRecorder. They depend on nothing but the
// standard library — their purpose is to make scenarios 1, 2, 4 and 5
// runnable and testable, not to exercise a third-party dependency, the same role
// the teacher's modules/print plays for its own runner suite.
package numeric
