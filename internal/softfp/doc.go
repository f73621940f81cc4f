// Package softfp generates RISC-V assembly test fixtures for software
// floating-point routines. Each test vector becomes one standalone program
// that calls the routine under test on the vector's operands and writes
// "<lhs> <rhs> <result> 00" to <program>.out, for comparison against the
// vector's expected output.
package softfp
