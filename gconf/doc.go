/*
Package gconf stores the configuration of extensions.

Every extension keeps one configuration message under "_c:<package>". It is
written from the "conf" section of the genesis app state and may later be
patched by the owner it names. Handlers treat a missing configuration as a
broken chain: no transaction can succeed without it.
*/
package gconf
