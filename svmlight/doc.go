/*
Package svmlight reads and writes sparse training sets in the plain-text
format shared by SVMlight and libsvm.

Each line holds one labelled sample: a numeric label followed by
whitespace-separated index:value pairs with strictly increasing indices.
Indices count from 1.

	+1 1:0.43 3:0.12 9415:0.2
	-1 2:0.8 76:0.18

Lines starting with '#' are comments in the SVMlight dialect and malformed
input in the libsvm dialect. ReadOptions selects between the two.

In precomputed-kernel sets, every line begins with the extra pair 0:serial
where serial is the sample's 1-based position in the kernel matrix.

To parse a file and train on it:

	prob, err := svmlight.ReadProblemFile("features.dat", svmlight.ReadOptions{})
	if err != nil {
		log.Fatal(err)
	}

Malformed input is reported as a *ParseError holding the 1-based line number.
*/
package svmlight
