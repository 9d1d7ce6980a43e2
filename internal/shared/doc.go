// Package shared holds helpers used by more than one package.
//
// The testutil subpackage provides:
//
//	- BufferedSlogHandler to capture and assert on structured logs
//	- Project dataset fixtures written to a test's temp directory
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    logger, handler := testutil.NewTestLogger(t)
//	    path := testutil.WriteProjectsCSV(t, testutil.SampleProjects)
//	    // run code under test with logger and path
//	    testutil.AssertNoErrors(t, handler)
//	}
package shared
