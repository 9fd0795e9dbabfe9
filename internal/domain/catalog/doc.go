/*
Package catalog holds the static set of apps the home screen can open.

The built-in catalog is embedded from apps.yaml. A directory of additional
YAML files (matched by FilePattern) may extend or override it. App bodies
are sanitized HTML; an optional init snippet is compiled to a
ScriptInitializer that runs once at device startup:

	- id: weather
	  name: Weather
	  body: <h2>72°</h2>
	  init: |
	    status("72° Sunny");
*/
package catalog
