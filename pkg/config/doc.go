/*
Package config builds the validated configuration of a single replacer run.

	+------------------+     +-------------+
	| positional args  |     | config file |
	| + flag values    |     | (optional)  |
	+--------+---------+     +------+------+
	         |                      |
	         +---------+------------+
	                   |
	            +------+------+
	            |  RunConfig  |
	            | (immutable) |
	            +-------------+

🎯 Purpose:
- Maps raw command line input to a RunConfig or a list of problems
- Generates the process id that names the run log and backups
- Loads optional defaults from JSON, YAML, TOML or HCL files

🔄 Flow:
1. LoadFile reads defaults (when --config is given)
2. FileConfig.Apply layers the flags on top
3. Parse validates everything and returns *RunConfig or *ValidationError

Parse never exits the process and never touches the filesystem beyond a
stat of the search path. Every rule is evaluated so the user sees all
problems at once.

🔍 Example:

	cfg, err := config.Parse([]string{"./src", "cat", "dog"}, config.Options{Backup: true}, time.Now())
	if err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			for _, p := range verr.Problems {
				fmt.Println(p.Message)
			}
		}
	}
*/
package config
