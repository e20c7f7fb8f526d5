package builtins

// Output and runtime functions. None of these fold: they have side effects
// or depend on the environment.

func registerOutput(r *Registry) {
	r.RegisterNames(
		"printf", "vprintf", "fprintf", "print_r", "var_dump", "var_export",
		"error_log", "trigger_error", "user_error", "header", "setcookie",
		"ob_start", "ob_get_clean", "ob_end_clean", "flush",
	)
}

func registerMisc(r *Registry) {
	r.RegisterNames(
		// filesystem
		"file_exists", "file_get_contents", "file_put_contents", "fopen", "fclose",
		"fread", "fwrite", "fgets", "feof", "unlink", "mkdir", "rmdir", "is_dir",
		"is_file", "is_readable", "is_writable", "realpath", "basename", "dirname",
		"pathinfo", "glob", "scandir", "tempnam", "sys_get_temp_dir",
		// time
		"time", "microtime", "date", "gmdate", "mktime", "strtotime", "sleep",
		"usleep", "hrtime", "date_default_timezone_set",
		// runtime
		"ini_set", "ini_get", "set_error_handler", "set_exception_handler",
		"error_reporting", "getenv", "putenv", "php_sapi_name", "phpversion",
		"memory_get_usage", "gc_collect_cycles", "debug_backtrace",
		"register_shutdown_function", "uniqid", "random_bytes", "version_compare",
		"extension_loaded", "exit", "die", "similar_text", "exec",
		"headers_sent", "getopt", "fsockopen", "openssl_sign",
	)

	r.RegisterRefParams("exec", 1, 2)
	r.RegisterRefParams("headers_sent", 0, 1)
	r.RegisterRefParams("fsockopen", 2, 3)
	r.RegisterRefParams("openssl_sign", 1)
}
