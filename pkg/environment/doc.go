// Package environment names the deployment environment a process runs in.
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	if env.IsProduction() {
//	    // production-only behaviour
//	}
package environment
