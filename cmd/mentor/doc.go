// Mentor turns terse code review comments into empathetic, educational
// feedback using a hosted language model.
//
// For each comment it asks the model for a positive rephrasing, the principle
// behind the remark and a concrete suggested improvement.
//
// Usage:
//
//	mentor                                   # run the built-in example
//	mentor review --file review.yaml         # review a YAML input file
//	mentor review --snippet main.py -c "..." # snippet file plus comments
//	mentor review --file review.yaml --dry-run
//	mentor models doctor                     # check provider credentials
//
// Credentials and settings may be placed in a .env file in the working
// directory.
package main
